// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/retro/fontatlas"
	"github.com/gogpu/retro/textmode"
)

// newNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func newNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// skipIfNagaUnsupported skips when the WGSL front end lacks a feature the
// shaders use.
func skipIfNagaUnsupported(t *testing.T, err error) {
	t.Helper()
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("Skipping: naga feature not yet implemented: %v", err)
	}
}

// requirePrograms skips tests that build pipelines when naga cannot
// compile the embedded shaders.
func requirePrograms(t *testing.T) {
	t.Helper()
	units := testUnits(t)
	params := newShaderParams(units)
	for _, build := range []func(shaderParams) (ProgramSource, error){compositorSource, presenterSource} {
		src, err := build(params)
		if err != nil {
			t.Fatalf("render shader source: %v", err)
		}
		for _, s := range []string{src.Vertex, src.Fragment} {
			if _, err := naga.Compile(s); err != nil {
				skipIfNagaUnsupported(t, err)
				t.Fatalf("%s: naga.Compile failed: %v", src.Label, err)
			}
		}
	}
}

// testUnits returns a registry populated in pipeline order.
func testUnits(t *testing.T) *TextureUnitRegistry {
	t.Helper()
	units := NewTextureUnitRegistry()
	for _, name := range []string{UnitScreen, UnitFont, UnitMap} {
		if _, err := units.Allocate(name); err != nil {
			t.Fatalf("Allocate(%q): %v", name, err)
		}
	}
	return units
}

func testAtlas(t *testing.T) *fontatlas.Atlas {
	t.Helper()
	a, err := fontatlas.Default()
	if err != nil {
		t.Fatalf("fontatlas.Default() error = %v", err)
	}
	return a
}

func testGrid(w, h int) *textmode.Grid {
	g := textmode.NewGridForScreen(w, h)
	g.Randomize(1)
	return g
}

var errInjected = errors.New("injected failure")

// failingDevice wraps a device and fails selected creation calls.
type failingDevice struct {
	hal.Device
	failTexture      bool
	failShaderModule bool
	failView         bool
}

func (d *failingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTexture {
		return nil, errInjected
	}
	return d.Device.CreateTexture(desc)
}

func (d *failingDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if d.failView {
		return nil, errInjected
	}
	return d.Device.CreateTextureView(tex, desc)
}

func (d *failingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.failShaderModule {
		return nil, errInjected
	}
	return d.Device.CreateShaderModule(desc)
}
