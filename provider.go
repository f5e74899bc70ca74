// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by device providers that expose their HAL
// device and queue, such as a gogpu application.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// surfaceFormatProvider reports the window surface format.
type surfaceFormatProvider interface {
	SurfaceFormat() gputypes.TextureFormat
}

// NewFromProvider creates a pipeline on the device shared by provider. The
// provider's surface format becomes the default SurfaceFormat; options
// still override it.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Pipeline, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if sp, ok := provider.(surfaceFormatProvider); ok {
		if f := sp.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			cfg.SurfaceFormat = f
		}
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newPipeline(device, queue, cfg)
}

func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, fmt.Errorf("%w: nil provider", ErrNoDevice)
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoDevice)
	}
	return device, queue, nil
}
