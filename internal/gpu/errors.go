// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
)

// GPU resource errors.
var (
	// ErrNilDevice is returned when a component is created without a device.
	ErrNilDevice = errors.New("gpu: device is nil")

	// ErrNilQueue is returned when a component is created without a queue.
	ErrNilQueue = errors.New("gpu: queue is nil")

	// ErrNoAdapter is returned when no usable adapter can be opened.
	ErrNoAdapter = errors.New("gpu: no suitable adapter")

	// ErrShaderCompile is returned when a shader stage fails to compile.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")

	// ErrTextureCreate is returned when a texture or its view cannot be
	// created.
	ErrTextureCreate = errors.New("gpu: texture creation failed")

	// ErrIncompleteTarget is returned when a render target fails its
	// completeness check.
	ErrIncompleteTarget = errors.New("gpu: render target is incomplete")

	// ErrNoTextureUnits is returned when the texture unit registry is
	// exhausted.
	ErrNoTextureUnits = errors.New("gpu: no texture units left")

	// ErrDuplicateUnit is returned when a name is registered twice.
	ErrDuplicateUnit = errors.New("gpu: texture unit already assigned")

	// ErrInvalidDimensions is returned for non-positive sizes.
	ErrInvalidDimensions = errors.New("gpu: dimensions must be positive")

	// ErrWaitTimeout is returned when the GPU does not finish a submission in
	// time.
	ErrWaitTimeout = errors.New("gpu: timed out waiting for submission")
)

// Stage identifies a shader stage in a ShaderError.
type Stage string

// Shader stages.
const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

// ShaderError describes a failed shader stage. It carries the generated
// source so the diagnostic can be logged next to the code that produced it.
type ShaderError struct {
	Program string
	Stage   Stage
	Source  string
	Err     error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("gpu: %s %s shader: %v", e.Program, e.Stage, e.Err)
}

// Unwrap returns both the ErrShaderCompile sentinel and the underlying
// compiler error.
func (e *ShaderError) Unwrap() []error {
	return []error{ErrShaderCompile, e.Err}
}
