// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"errors"

	"github.com/gogpu/retro/internal/gpu"
)

// Pipeline errors. Errors from the GPU layer wrap the same sentinels, so
// errors.Is works on anything a Pipeline returns.
var (
	// ErrNoDevice is returned when no usable GPU device was supplied.
	ErrNoDevice = errors.New("retro: no GPU device")

	// ErrClosed is returned by operations on a closed pipeline.
	ErrClosed = errors.New("retro: pipeline is closed")

	// ErrInvalidDimensions is returned for non-positive window or screen
	// sizes.
	ErrInvalidDimensions = gpu.ErrInvalidDimensions

	// ErrShaderCompile is returned when a shader stage fails to compile.
	// Use errors.As with *ShaderError for the stage and source.
	ErrShaderCompile = gpu.ErrShaderCompile

	// ErrTextureCreate is returned when a texture cannot be allocated.
	ErrTextureCreate = gpu.ErrTextureCreate

	// ErrIncompleteTarget is returned when the virtual screen fails its
	// completeness check.
	ErrIncompleteTarget = gpu.ErrIncompleteTarget

	// ErrNoTextureUnits is returned when texture units run out.
	ErrNoTextureUnits = gpu.ErrNoTextureUnits
)

// ShaderError describes a failed shader stage.
type ShaderError = gpu.ShaderError
