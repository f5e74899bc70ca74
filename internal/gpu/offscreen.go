// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

const offscreenUsage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc

// OffscreenSurface stands in for a window surface in headless runs: the
// presenter renders into a texture that can be read back after each frame.
type OffscreenSurface struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	target *texture2D
	frames int
}

// NewOffscreenSurface allocates a width x height surface.
func NewOffscreenSurface(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, width, height int) (*OffscreenSurface, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	s := &OffscreenSurface{device: device, queue: queue, format: format}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize reallocates the surface texture.
func (s *OffscreenSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: surface %dx%d", ErrInvalidDimensions, width, height)
	}
	if s.target != nil && int(s.target.width) == width && int(s.target.height) == height {
		return nil
	}
	target, err := createTexture2D(s.device, "offscreen_surface",
		uint32(width), uint32(height), s.format, offscreenUsage) //nolint:gosec // validated positive
	if err != nil {
		return err
	}
	if err := checkComplete(target); err != nil {
		target.destroy(s.device)
		return err
	}
	s.target.destroy(s.device)
	s.target = target
	return nil
}

// Acquire returns the view to render the next frame into.
func (s *OffscreenSurface) Acquire() (hal.TextureView, error) {
	if s.target == nil {
		return nil, fmt.Errorf("%w: surface destroyed", ErrIncompleteTarget)
	}
	return s.target.view, nil
}

// Present counts the frame; the image stays in the texture until the next
// Acquire.
func (s *OffscreenSurface) Present() error {
	s.frames++
	return nil
}

// Frames returns the number of presented frames.
func (s *OffscreenSurface) Frames() int { return s.frames }

// Size returns the surface size.
func (s *OffscreenSurface) Size() (width, height int) {
	if s.target == nil {
		return 0, 0
	}
	return int(s.target.width), int(s.target.height)
}

// Format returns the surface pixel format.
func (s *OffscreenSurface) Format() gputypes.TextureFormat { return s.format }

// Capture reads the last presented frame.
func (s *OffscreenSurface) Capture() (*image.RGBA, error) {
	if s.target == nil {
		return nil, fmt.Errorf("%w: surface destroyed", ErrIncompleteTarget)
	}
	w, h := s.Size()
	return Readback(s.device, s.queue, s.target.texture, s.format, w, h, gputypes.TextureUsageRenderAttachment)
}

// Destroy releases the surface texture.
func (s *OffscreenSurface) Destroy() {
	s.target.destroy(s.device)
	s.target = nil
}
