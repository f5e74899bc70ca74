// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"

	"github.com/gogpu/retro"
	"github.com/gogpu/retro/fontatlas"
	"github.com/gogpu/retro/internal/filter"
	"github.com/gogpu/retro/internal/geometry"
	"github.com/gogpu/retro/textmode"
)

// errScreenMismatch reports a virtual screen capture that differs from the
// CPU reference decode.
var errScreenMismatch = errors.New("virtual screen differs from reference")

// reference recomputes captured frames on the CPU for -check.
type reference struct {
	atlas     *image.Gray
	margin    float32
	threshold int
}

func newReference(cfg retro.Config) (*reference, error) {
	atlas := cfg.Atlas
	if atlas == nil {
		var err error
		if atlas, err = fontatlas.Default(); err != nil {
			return nil, err
		}
	}
	return &reference{atlas: atlas.Image(), margin: cfg.Margin, threshold: cfg.MarginThreshold}, nil
}

// screen decodes grid into a width x height virtual screen.
func (r *reference) screen(grid *textmode.Grid, width, height int) *image.NRGBA {
	return textmode.Render(grid, r.atlas, width, height)
}

// frame letterboxes screen into a w x h window over the border color.
func (r *reference) frame(screen *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(textmode.Border.NRGBA()), image.Point{}, draw.Src)

	sb := screen.Bounds()
	quad := geometry.ComputeLetterbox(
		geometry.Aspect(w, h),
		geometry.Aspect(sb.Dx(), sb.Dy()),
		geometry.MarginScale(w, r.threshold, r.margin),
	)
	hx, hy := quad.Extent()
	qw := int(math32.Round(hx * float32(w)))
	qh := int(math32.Round(hy * float32(h)))
	if qw <= 0 || qh <= 0 {
		return dst
	}
	x0, y0 := (w-qw)/2, (h-qh)/2
	draw.Draw(dst, image.Rect(x0, y0, x0+qw, y0+qh), filter.Magnify(screen, qw, qh), image.Point{}, draw.Src)
	return dst
}

// mismatches counts pixels whose channels differ by more than tol. Images of
// different sizes mismatch everywhere.
func mismatches(got image.Image, want *image.NRGBA, tol int) int {
	gb, wb := got.Bounds(), want.Bounds()
	if gb.Dx() != wb.Dx() || gb.Dy() != wb.Dy() {
		return max(gb.Dx()*gb.Dy(), wb.Dx()*wb.Dy())
	}
	n := 0
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y)).(color.NRGBA)
			w := want.NRGBAAt(wb.Min.X+x, wb.Min.Y+y)
			if !near(g.R, w.R, tol) || !near(g.G, w.G, tol) || !near(g.B, w.B, tol) || !near(g.A, w.A, tol) {
				n++
			}
		}
	}
	return n
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d <= tol && -d <= tol
}
