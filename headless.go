// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/retro/internal/gpu"
)

// Device is a GPU device opened by OpenDevice. Close releases it.
type Device = gpu.Device

// OffscreenSurface is a Surface backed by a texture, for rendering without a
// window. Capture reads back the last presented frame.
type OffscreenSurface = gpu.OffscreenSurface

// OpenDevice opens a Vulkan device for headless use.
func OpenDevice() (*Device, error) {
	return gpu.OpenDevice()
}

// NewOffscreenSurface creates a width x height surface of the given format.
func NewOffscreenSurface(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, width, height int) (*OffscreenSurface, error) {
	return gpu.NewOffscreenSurface(device, queue, format, width, height)
}

var _ Surface = (*OffscreenSurface)(nil)
