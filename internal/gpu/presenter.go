// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/retro/internal/geometry"
	"github.com/gogpu/retro/textmode"
)

// Presenter draws the virtual screen into the window through the letterbox
// quad, filtering it with the seam-aware magnification shader.
//
// The presenter owns its program, vertex buffer and sampler. It does not own
// the virtual screen; BindScreen must be called after the screen is
// reallocated.
type Presenter struct {
	device  hal.Device
	format  gputypes.TextureFormat
	sampler hal.Sampler
	quad    *quadPipeline
	screen  *VirtualScreen
	geom    geometry.Quad
}

// NewPresenter compiles the presentation program for a window surface of
// the given format and binds screen.
func NewPresenter(device hal.Device, queue hal.Queue, units *TextureUnitRegistry,
	format gputypes.TextureFormat, screen *VirtualScreen, quad geometry.Quad) (*Presenter, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}

	p := &Presenter{device: device, format: format, geom: quad}
	var err error
	p.sampler, err = device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "present_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("create present sampler: %w", err)
	}

	src, err := presenterSource(newShaderParams(units))
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.quad, err = newQuadPipeline(device, queue, quadPipelineDesc{
		label:   "present",
		source:  src,
		format:  format,
		units:   []TextureUnit{screen.Unit()},
		quad:    quad,
		sampler: p.sampler,
	})
	if err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.BindScreen(screen); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// BindScreen points the presenter at screen's current texture and updates
// the screen_size uniform.
func (p *Presenter) BindScreen(screen *VirtualScreen) error {
	if err := p.quad.bindTextures([]gputypes.BindGroupEntry{
		textureBinding(screen.Unit(), screen.target),
	}); err != nil {
		return err
	}
	p.screen = screen
	w, h := screen.Size()
	return p.quad.setScreenSize(w, h)
}

// SetGeometry replaces the letterbox quad in place.
func (p *Presenter) SetGeometry(q geometry.Quad) error {
	if err := p.quad.setQuad(q); err != nil {
		return err
	}
	p.geom = q
	return nil
}

// Geometry returns the current letterbox quad.
func (p *Presenter) Geometry() geometry.Quad {
	return p.geom
}

// Format returns the window surface format the program targets.
func (p *Presenter) Format() gputypes.TextureFormat {
	return p.format
}

// Render records the presentation pass into encoder, clearing view to the
// border color and drawing with a width x height viewport. The caller
// clamps the viewport to the extent of view.
func (p *Presenter) Render(encoder hal.CommandEncoder, view hal.TextureView, width, height int) {
	p.quad.draw(encoder, view, textmode.Border, uint32(width), uint32(height)) //nolint:gosec // window sizes are positive
}

// Destroy releases the program, pipeline and sampler.
func (p *Presenter) Destroy() {
	if p.quad != nil {
		p.quad.destroy()
		p.quad = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
}
