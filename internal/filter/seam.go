// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "github.com/chewxy/math32"

// MinDerivative bounds d away from zero so a degenerate derivative snaps to
// the nearest texel center instead of dividing by zero.
const MinDerivative = 1e-6

// SeamCoord returns the filtered sample coordinate, in virtual-screen pixels,
// for one axis.
func SeamCoord(p, d float32) float32 {
	d = math32.Max(math32.Abs(d), MinDerivative)
	seam := math32.Round(p)
	offset := clamp((p-seam)/d, -0.5, 0.5)
	return seam + offset
}

// SeamSample returns the normalized texture coordinate sampled for the
// virtual-screen pixel coordinate (px, py).
func SeamSample(px, py, dx, dy, screenW, screenH float32) (u, v float32) {
	return SeamCoord(px, dx) / screenW, SeamCoord(py, dy) / screenH
}

// Derivative returns the per-axis derivative magnitude produced by
// stretching a screenW x screenH virtual screen over a quadW x quadH pixel
// rectangle.
func Derivative(screenW, screenH, quadW, quadH float32) (dx, dy float32) {
	return screenW / quadW, screenH / quadH
}

// BlendFraction returns the bilinear interpolation weight toward the next
// texel for a sample at pixel coordinate c. Zero means the sample sits on a
// texel center.
func BlendFraction(c float32) float32 {
	t := c - 0.5
	return t - math32.Floor(t)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
