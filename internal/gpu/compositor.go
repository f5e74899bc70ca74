// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/retro/internal/geometry"
	"github.com/gogpu/retro/textmode"
)

// Compositor renders the cell grid into the virtual screen using the font
// atlas, one glyph per 8x8 cell.
//
// The compositor owns the font and cell-grid textures. It registers them in
// the texture unit registry as UnitFont and UnitMap, in that order.
type Compositor struct {
	device hal.Device
	queue  hal.Queue

	font *FontTexture
	grid *CellGridTexture
	quad *quadPipeline
}

// NewCompositor uploads atlas and grid, compiles the text-mode program and
// prepares a full-target quad for a screenW x screenH screen.
func NewCompositor(device hal.Device, queue hal.Queue, units *TextureUnitRegistry,
	atlas AtlasImage, grid *textmode.Grid, screenW, screenH int) (*Compositor, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}

	fontUnit, err := units.Allocate(UnitFont)
	if err != nil {
		return nil, err
	}
	mapUnit, err := units.Allocate(UnitMap)
	if err != nil {
		return nil, err
	}

	c := &Compositor{device: device, queue: queue}
	if c.font, err = newFontTexture(device, queue, fontUnit, atlas); err != nil {
		return nil, err
	}
	if c.grid, err = newCellGridTexture(device, queue, mapUnit, grid); err != nil {
		c.Destroy()
		return nil, err
	}

	src, err := compositorSource(newShaderParams(units))
	if err != nil {
		c.Destroy()
		return nil, err
	}
	c.quad, err = newQuadPipeline(device, queue, quadPipelineDesc{
		label:  "textmode",
		source: src,
		format: ScreenFormat,
		units:  []TextureUnit{fontUnit, mapUnit},
		quad:   geometry.FullTarget(),
	})
	if err != nil {
		c.Destroy()
		return nil, err
	}
	if err := c.rebind(); err != nil {
		c.Destroy()
		return nil, err
	}
	if err := c.quad.setScreenSize(screenW, screenH); err != nil {
		c.Destroy()
		return nil, err
	}

	slogger().Info("compositor ready", "font_unit", fontUnit, "map_unit", mapUnit)
	return c, nil
}

func (c *Compositor) rebind() error {
	return c.quad.bindTextures([]gputypes.BindGroupEntry{
		textureBinding(c.font.unit, c.font.tex),
		textureBinding(c.grid.unit, c.grid.tex),
	})
}

// SetGrid reallocates the cell-grid texture for grid, uploads it and
// rebinds the textures.
func (c *Compositor) SetGrid(grid *textmode.Grid) error {
	if err := c.grid.Resize(grid); err != nil {
		return err
	}
	return c.rebind()
}

// SetScreenSize updates the screen_size uniform.
func (c *Compositor) SetScreenSize(width, height int) error {
	return c.quad.setScreenSize(width, height)
}

// Render uploads grid if it changed and records the compositing pass into
// encoder, targeting screen.
//
// The screen is moved to render-attachment usage before the pass and to
// sampled usage after it, so the presentation pass that follows in the
// same encoder reads the finished image.
func (c *Compositor) Render(encoder hal.CommandEncoder, screen *VirtualScreen, grid *textmode.Grid) error {
	if err := c.grid.Upload(grid); err != nil {
		return err
	}
	w, h := screen.Size()
	screen.transition(encoder, gputypes.TextureUsageRenderAttachment)
	c.quad.draw(encoder, screen.View(), textmode.Background, uint32(w), uint32(h)) //nolint:gosec // screen sizes are positive
	screen.transition(encoder, gputypes.TextureUsageTextureBinding)
	return nil
}

// GridSize returns the current cell-grid texture size.
func (c *Compositor) GridSize() (cols, rows int) {
	return c.grid.Size()
}

// Destroy releases the program, pipeline and textures.
func (c *Compositor) Destroy() {
	if c.quad != nil {
		c.quad.destroy()
		c.quad = nil
	}
	if c.grid != nil {
		c.grid.Destroy()
		c.grid = nil
	}
	if c.font != nil {
		c.font.Destroy()
		c.font = nil
	}
}
