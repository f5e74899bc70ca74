// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"image/color"
	"testing"
)

const crispTolerance = 1e-3

func isCrisp(c float32) bool {
	f := BlendFraction(c)
	return f < crispTolerance || f > 1-crispTolerance
}

func TestSeamCoord_IntegerMagnificationIsCrisp(t *testing.T) {
	for _, m := range []int{1, 2, 3, 4, 8} {
		d := 1 / float32(m)
		for x := 0; x < 10*m; x++ {
			p := (float32(x) + 0.5) * d
			if c := SeamCoord(p, d); !isCrisp(c) {
				t.Errorf("magnification %d pixel %d: coord %v is not a texel center", m, x, c)
			}
		}
	}
}

func TestSeamCoord_BlendBandWidth(t *testing.T) {
	for _, m := range []float32{2, 2.5, 3.3, 3.7, 5.25} {
		d := 1 / m
		n := int(16 * m)
		prevBlended := false
		blended := 0
		for x := 0; x < n; x++ {
			p := (float32(x) + 0.5) * d
			b := !isCrisp(SeamCoord(p, d))
			if b {
				blended++
			}
			if b && prevBlended {
				t.Errorf("magnification %v: adjacent pixels %d and %d both blended", m, x-1, x)
			}
			prevBlended = b
		}
		// At most one blended pixel per texel boundary.
		if blended > 16 {
			t.Errorf("magnification %v: %d blended pixels over 16 texels", m, blended)
		}
	}
}

func TestSeamCoord_StaysNearSeam(t *testing.T) {
	for _, d := range []float32{0.1, 0.4, 1, 3} {
		for p := float32(0); p < 20; p += 0.137 {
			c := SeamCoord(p, d)
			seam := float32(int(p + 0.5))
			if c < seam-0.5 || c > seam+0.5 {
				t.Errorf("SeamCoord(%v, %v) = %v, outside [%v, %v]", p, d, c, seam-0.5, seam+0.5)
			}
			if c != SeamCoord(p, d) {
				t.Errorf("SeamCoord(%v, %v) not deterministic", p, d)
			}
		}
	}
}

func TestSeamCoord_ZeroDerivative(t *testing.T) {
	if c := SeamCoord(3.2, 0); c != 3.5 {
		t.Errorf("SeamCoord(3.2, 0) = %v, want 3.5", c)
	}
	if c := SeamCoord(3.8, 0); c != 3.5 {
		t.Errorf("SeamCoord(3.8, 0) = %v, want 3.5", c)
	}
}

func TestSeamSample(t *testing.T) {
	u, v := SeamSample(0.125, 0.125, 0.25, 0.25, 320, 240)
	if u != 0.5/320 || v != 0.5/240 {
		t.Errorf("SeamSample() = (%v, %v), want (%v, %v)", u, v, 0.5/320, 0.5/240)
	}
}

func TestDerivative(t *testing.T) {
	dx, dy := Derivative(320, 240, 608, 456)
	if dx != 320.0/608.0 || dy != 240.0/456.0 {
		t.Errorf("Derivative() = (%v, %v)", dx, dy)
	}
}

func TestMagnify_IntegerScalePreservesPalette(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	a := color.NRGBA{R: 71, G: 59, B: 171, A: 255}
	b := color.NRGBA{R: 135, G: 122, B: 222, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				src.SetNRGBA(x, y, a)
			} else {
				src.SetNRGBA(x, y, b)
			}
		}
	}

	dst := Magnify(src, 12, 12)
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			want := src.NRGBAAt(x/3, y/3)
			if got := dst.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBilinear_Midpoint(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, A: 255})
	got := Bilinear(src, 0.5, 0.5)
	if got.R != 100 {
		t.Errorf("Bilinear(0.5, 0.5).R = %d, want 100", got.R)
	}
	if got := Bilinear(src, 0, 0.5); got.R != 0 {
		t.Errorf("Bilinear(0, 0.5).R = %d, want 0 (clamped)", got.R)
	}
}
