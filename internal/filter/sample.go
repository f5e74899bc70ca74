// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/gogpu/retro/internal/parallel"
)

// Bilinear samples src at normalized coordinate (u, v) with clamp-to-edge
// addressing, like a linear sampler.
func Bilinear(src *image.NRGBA, u, v float32) color.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{}
	}

	x := u*float32(w) - 0.5
	y := v*float32(h) - 0.5
	x0f, y0f := math32.Floor(x), math32.Floor(y)
	tx, ty := x-x0f, y-y0f
	x0, y0 := int(x0f), int(y0f)

	c00 := texel(src, x0, y0)
	c10 := texel(src, x0+1, y0)
	c01 := texel(src, x0, y0+1)
	c11 := texel(src, x0+1, y0+1)

	var out [4]float32
	for i := range out {
		top := c00[i]*(1-tx) + c10[i]*tx
		bottom := c01[i]*(1-tx) + c11[i]*tx
		out[i] = top*(1-ty) + bottom*ty
	}
	return color.NRGBA{R: quantize(out[0]), G: quantize(out[1]), B: quantize(out[2]), A: quantize(out[3])}
}

// Magnify renders src into a dstW x dstH image using the seam filter, the
// way the presenter fills its letterbox quad.
func Magnify(src *image.NRGBA, dstW, dstH int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	b := src.Bounds()
	sw, sh := float32(b.Dx()), float32(b.Dy())
	dx, dy := Derivative(sw, sh, float32(dstW), float32(dstH))
	parallel.Default().Rows(dstH, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			py := (float32(y) + 0.5) * dy
			for x := 0; x < dstW; x++ {
				px := (float32(x) + 0.5) * dx
				u, v := SeamSample(px, py, dx, dy, sw, sh)
				dst.SetNRGBA(x, y, Bilinear(src, u, v))
			}
		}
	})
	return dst
}

func texel(src *image.NRGBA, x, y int) [4]float32 {
	b := src.Bounds()
	x = min(max(x, 0), b.Dx()-1)
	y = min(max(y, 0), b.Dy()-1)
	c := src.NRGBAAt(b.Min.X+x, b.Min.Y+y)
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func quantize(v float32) uint8 {
	return uint8(clamp(math32.Round(v), 0, 255))
}
