// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ScreenFormat is the fixed pixel format of the virtual screen.
const ScreenFormat = gputypes.TextureFormatRGBA8Unorm

// screenUsage lets the compositor render into the screen, the presenter
// sample it and captures copy it out.
const screenUsage = gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc

// VirtualScreen is the fixed-resolution offscreen color target the
// compositor draws into and the presenter samples from.
//
// The screen owns its texture and view. Resize replaces both; anything that
// referenced the old view (the presenter's bind group) must be rebound.
//
// The screen tracks the usage its texture was last transitioned to, so
// passes that write, sample or copy it can record the matching barrier.
// Zero means the contents are undefined, as after allocation.
type VirtualScreen struct {
	device hal.Device
	unit   TextureUnit
	target *texture2D
	usage  gputypes.TextureUsage
}

// NewVirtualScreen allocates a width x height screen and registers it in
// units under UnitScreen.
func NewVirtualScreen(device hal.Device, units *TextureUnitRegistry, width, height int) (*VirtualScreen, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	unit, err := units.Allocate(UnitScreen)
	if err != nil {
		return nil, err
	}
	s := &VirtualScreen{device: device, unit: unit}
	if err := s.allocate(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *VirtualScreen) allocate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: virtual screen %dx%d", ErrInvalidDimensions, width, height)
	}
	target, err := createTexture2D(s.device, "virtual_screen",
		uint32(width), uint32(height), ScreenFormat, screenUsage) //nolint:gosec // validated positive
	if err != nil {
		return err
	}
	if err := checkComplete(target); err != nil {
		target.destroy(s.device)
		return err
	}
	s.target = target
	s.usage = 0
	slogger().Info("virtual screen allocated", "width", width, "height", height, "unit", s.unit)
	return nil
}

// Resize releases the current texture and allocates one of the new size.
// A size equal to the current one is a no-op.
func (s *VirtualScreen) Resize(width, height int) error {
	if s.target != nil && int(s.target.width) == width && int(s.target.height) == height {
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: virtual screen %dx%d", ErrInvalidDimensions, width, height)
	}
	s.target.destroy(s.device)
	s.target = nil
	return s.allocate(width, height)
}

// Destroy releases the screen's GPU resources.
func (s *VirtualScreen) Destroy() {
	s.target.destroy(s.device)
	s.target = nil
}

// Unit returns the screen's texture unit.
func (s *VirtualScreen) Unit() TextureUnit { return s.unit }

// Size returns the screen size in pixels.
func (s *VirtualScreen) Size() (width, height int) {
	if s.target == nil {
		return 0, 0
	}
	return int(s.target.width), int(s.target.height)
}

// Aspect returns width/height.
func (s *VirtualScreen) Aspect() float32 {
	w, h := s.Size()
	if h == 0 {
		return 0
	}
	return float32(w) / float32(h)
}

// Texture returns the backing texture.
func (s *VirtualScreen) Texture() hal.Texture {
	if s.target == nil {
		return nil
	}
	return s.target.texture
}

// Usage returns the usage the texture was last transitioned to.
func (s *VirtualScreen) Usage() gputypes.TextureUsage { return s.usage }

// transition records a barrier moving the texture to usage to. Nothing is
// recorded when the texture is already there.
func (s *VirtualScreen) transition(encoder hal.CommandEncoder, to gputypes.TextureUsage) {
	if s.target == nil || s.usage == to {
		return
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.target.texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: s.usage,
			NewUsage: to,
		},
	}})
	s.usage = to
}

// View returns the render/sample view.
func (s *VirtualScreen) View() hal.TextureView {
	if s.target == nil {
		return nil
	}
	return s.target.view
}

// checkComplete verifies that t can serve as a color render target.
func checkComplete(t *texture2D) error {
	switch {
	case t == nil || t.texture == nil || t.view == nil:
		return fmt.Errorf("%w: missing texture or view", ErrIncompleteTarget)
	case t.width == 0 || t.height == 0:
		return fmt.Errorf("%w: zero-sized attachment", ErrIncompleteTarget)
	case t.usage&gputypes.TextureUsageRenderAttachment == 0:
		return fmt.Errorf("%w: %s lacks render attachment usage", ErrIncompleteTarget, t.label)
	case !colorRenderable(t.format):
		return fmt.Errorf("%w: format %v is not color-renderable", ErrIncompleteTarget, t.format)
	}
	return nil
}

func colorRenderable(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}
