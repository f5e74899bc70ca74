// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textmode

import "image/color"

// RGBA is a linear color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Screen colors. Glyph coverage blends from Background to Foreground.
var (
	Background = RGBA{R: 0.28, G: 0.23, B: 0.67, A: 1}
	Foreground = RGBA{R: 0.53, G: 0.48, B: 0.87, A: 1}

	// Border fills the window around the letterboxed screen.
	Border = Foreground
)

// Mix returns the linear blend of a and b at t.
func Mix(a, b RGBA, t float32) RGBA {
	s := 1 - t
	return RGBA{
		R: a.R*s + b.R*t,
		G: a.G*s + b.G*t,
		B: a.B*s + b.B*t,
		A: a.A*s + b.A*t,
	}
}

// Shade returns the screen color for a glyph coverage in [0, 1].
func Shade(coverage float32) RGBA {
	return Mix(Background, Foreground, coverage)
}

// NRGBA quantizes c to 8 bits per channel the way an RGBA8Unorm target does.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: unorm8(c.R), G: unorm8(c.G), B: unorm8(c.B), A: unorm8(c.A)}
}

func unorm8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
