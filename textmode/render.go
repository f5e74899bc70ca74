// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textmode

import (
	"image"

	"github.com/gogpu/retro/internal/parallel"
)

// Coverage returns the glyph coverage in [0, 1] for screen pixel (px, py).
//
// The covering cell is floor(p / GlyphSize), clamped to the grid. An empty
// grid or atlas yields zero coverage.
func Coverage(g *Grid, atlas *image.Gray, px, py int) float32 {
	if g == nil || g.Empty() || atlas == nil {
		return 0
	}
	ab := atlas.Bounds()
	if ab.Empty() {
		return 0
	}
	col := clampInt(px/GlyphSize, 0, g.cols-1)
	row := clampInt(py/GlyphSize, 0, g.rows-1)
	t := AtlasTexel(g.At(col, row), px, py, ab.Dx(), ab.Dy())
	return float32(atlas.GrayAt(ab.Min.X+t.X, ab.Min.Y+t.Y).Y) / 255
}

// Render draws the grid into a width x height image on the CPU, pixel for
// pixel the way the compositor does on the GPU.
func Render(g *Grid, atlas *image.Gray, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	parallel.Default().Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				img.SetNRGBA(x, y, Shade(Coverage(g, atlas, x, y)).NRGBA())
			}
		}
	})
	return img
}
