// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"sync"
)

// TextureUnit is the binding slot a texture occupies in the texture bind
// group (group 1) of every program that samples it.
type TextureUnit uint32

// MaxTextureUnits bounds the registry. It matches the smallest
// maxSampledTexturesPerShaderStage WebGPU guarantees.
const MaxTextureUnits = 16

// Names of the textures the pipeline registers.
const (
	UnitScreen = "screen"
	UnitFont   = "font"
	UnitMap    = "map"
)

// TextureUnitRegistry hands out texture units from a monotonically
// increasing counter starting at 0. A name keeps its unit for the lifetime
// of the registry, so programs compiled against it stay valid when the
// texture behind a unit is reallocated.
//
// TextureUnitRegistry is safe for concurrent use.
type TextureUnitRegistry struct {
	mu    sync.Mutex
	next  TextureUnit
	names map[string]TextureUnit
	order []string
}

// NewTextureUnitRegistry creates an empty registry.
func NewTextureUnitRegistry() *TextureUnitRegistry {
	return &TextureUnitRegistry{names: make(map[string]TextureUnit)}
}

// Allocate assigns the next free unit to name.
func (r *TextureUnitRegistry) Allocate(name string) (TextureUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.names[name]; ok {
		return u, fmt.Errorf("%w: %q has unit %d", ErrDuplicateUnit, name, u)
	}
	if r.next >= MaxTextureUnits {
		return 0, fmt.Errorf("%w: cannot assign %q", ErrNoTextureUnits, name)
	}
	u := r.next
	r.next++
	r.names[name] = u
	r.order = append(r.order, name)
	slogger().Debug("texture unit assigned", "name", name, "unit", u)
	return u, nil
}

// Lookup returns the unit assigned to name.
func (r *TextureUnitRegistry) Lookup(name string) (TextureUnit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.names[name]
	return u, ok
}

// Len returns the number of assigned units.
func (r *TextureUnitRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Names returns the registered names in assignment order.
func (r *TextureUnitRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}
