// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/retro/textmode"
)

const byteTextureUsage = gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst

// CellGridTexture is the GPU copy of a textmode.Grid: one R8Unorm texel per
// cell, so a stored byte b reads back as b/255 in the shader.
type CellGridTexture struct {
	device hal.Device
	queue  hal.Queue
	unit   TextureUnit
	tex    *texture2D
}

func newCellGridTexture(device hal.Device, queue hal.Queue, unit TextureUnit, grid *textmode.Grid) (*CellGridTexture, error) {
	c := &CellGridTexture{device: device, queue: queue, unit: unit}
	if err := c.Resize(grid); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

// Resize reallocates the texture to the grid's dimensions and uploads its
// contents. An empty grid keeps a 1x1 texture so the bind group stays valid.
func (c *CellGridTexture) Resize(grid *textmode.Grid) error {
	cols, rows := grid.Size()
	w, h := uint32(max(cols, 1)), uint32(max(rows, 1)) //nolint:gosec // small positive
	if c.tex != nil && c.tex.width == w && c.tex.height == h {
		grid.MarkDirty()
		return c.Upload(grid)
	}

	tex, err := createTexture2D(c.device, "cell_grid", w, h, gputypes.TextureFormatR8Unorm, byteTextureUsage)
	if err != nil {
		return err
	}
	c.tex.destroy(c.device)
	c.tex = tex
	slogger().Debug("cell grid allocated", "cols", cols, "rows", rows, "unit", c.unit)

	grid.MarkDirty()
	return c.Upload(grid)
}

// Upload writes the grid to the texture when it changed since the last
// upload. A failed write leaves the grid dirty.
func (c *CellGridTexture) Upload(grid *textmode.Grid) error {
	if !grid.Dirty() {
		return nil
	}
	data := grid.Bytes()
	if grid.Empty() {
		data = []byte{0}
	}
	if err := c.tex.write(c.queue, data, 1); err != nil {
		return err
	}
	grid.MarkClean()
	return nil
}

// Size returns the texture size in cells.
func (c *CellGridTexture) Size() (cols, rows int) {
	return int(c.tex.width), int(c.tex.height)
}

// Destroy releases the texture.
func (c *CellGridTexture) Destroy() {
	c.tex.destroy(c.device)
	c.tex = nil
}

// FontTexture is the glyph atlas uploaded as an R8Unorm texture.
type FontTexture struct {
	device hal.Device
	unit   TextureUnit
	tex    *texture2D
}

// AtlasImage is the pixel data a FontTexture uploads. *fontatlas.Atlas
// satisfies it.
type AtlasImage interface {
	Width() int
	Height() int
	Pix() []byte
}

func newFontTexture(device hal.Device, queue hal.Queue, unit TextureUnit, atlas AtlasImage) (*FontTexture, error) {
	tex, err := createTexture2D(device, "font_atlas",
		uint32(atlas.Width()), uint32(atlas.Height()), //nolint:gosec // atlas sizes are small
		gputypes.TextureFormatR8Unorm, byteTextureUsage)
	if err != nil {
		return nil, err
	}
	if err := tex.write(queue, atlas.Pix(), 1); err != nil {
		tex.destroy(device)
		return nil, err
	}
	slogger().Debug("font atlas uploaded", "width", atlas.Width(), "height", atlas.Height(), "unit", unit)
	return &FontTexture{device: device, unit: unit, tex: tex}, nil
}

// Size returns the atlas size in pixels.
func (f *FontTexture) Size() (width, height int) {
	return int(f.tex.width), int(f.tex.height)
}

// Destroy releases the texture.
func (f *FontTexture) Destroy() {
	f.tex.destroy(f.device)
	f.tex = nil
}
