// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/retro/textmode"
)

func litPixels(g *image.Gray) int {
	n := 0
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g.GrayAt(x, y).Y != 0 {
				n++
			}
		}
	}
	return n
}

func TestDefault(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if a.Width() != 128 || a.Height() != 48 {
		t.Errorf("Default() size = %dx%d, want 128x48", a.Width(), a.Height())
	}
	if a.Rows() != 6 || a.Columns() != 16 || a.GlyphCount() != 96 {
		t.Errorf("layout = %d cols x %d rows (%d glyphs)", a.Columns(), a.Rows(), a.GlyphCount())
	}
	if len(a.Pix()) != 128*48 {
		t.Errorf("len(Pix()) = %d, want %d", len(a.Pix()), 128*48)
	}
	for i, v := range a.Pix() {
		if v != 0 && v != 0xFF {
			t.Fatalf("Pix()[%d] = %#02x, want 0 or 0xff", i, v)
		}
	}

	if n := litPixels(a.Glyph(textmode.EncodeRune(' '))); n != 0 {
		t.Errorf("space glyph has %d lit pixels, want 0", n)
	}
	for _, r := range "H#M0" {
		if n := litPixels(a.Glyph(textmode.EncodeRune(r))); n == 0 {
			t.Errorf("glyph %q has no lit pixels", r)
		}
	}

	drawn := 0
	for r := rune('!'); r <= '~'; r++ {
		if litPixels(a.Glyph(textmode.EncodeRune(r))) > 0 {
			drawn++
		}
	}
	if drawn < 60 {
		t.Errorf("only %d of 94 printable glyphs drawn", drawn)
	}
}

func TestDefault_Shared(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	b, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Default() should return the shared atlas")
	}
}

func TestFromImage(t *testing.T) {
	const cell = 16
	sheet := image.NewRGBA(image.Rect(0, 0, 16*cell, 2*cell))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	// Glyph 1 solid, glyph 0x11 has a lit top-left quarter.
	draw.Draw(sheet, image.Rect(cell, 0, 2*cell, cell), image.White, image.Point{}, draw.Src)
	draw.Draw(sheet, image.Rect(cell, cell, cell+cell/2, cell+cell/2), image.White, image.Point{}, draw.Src)

	a, err := FromImage(sheet, cell)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if a.Width() != 128 || a.Height() != 16 {
		t.Fatalf("size = %dx%d, want 128x16", a.Width(), a.Height())
	}
	if n := litPixels(a.Glyph(0)); n != 0 {
		t.Errorf("glyph 0 lit = %d, want 0", n)
	}
	if n := litPixels(a.Glyph(1)); n != 64 {
		t.Errorf("glyph 1 lit = %d, want 64", n)
	}
	if n := litPixels(a.Glyph(0x11)); n != 16 {
		t.Errorf("glyph 0x11 lit = %d, want 16", n)
	}
	// Bytes beyond the sheet address no glyph.
	if n := litPixels(a.Glyph(0x41)); n != 0 {
		t.Errorf("glyph 0x41 lit = %d, want 0", n)
	}
}

func TestFromImage_Errors(t *testing.T) {
	sheet := image.NewGray(image.Rect(0, 0, 64, 8))
	if _, err := FromImage(sheet, 0); !errors.Is(err, ErrInvalidCellSize) {
		t.Errorf("cellSize 0: err = %v, want ErrInvalidCellSize", err)
	}
	if _, err := FromImage(sheet, 8); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("8 columns: err = %v, want ErrInvalidLayout", err)
	}
	tall := image.NewGray(image.Rect(0, 0, 128, 17*8))
	if _, err := FromImage(tall, 8); !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("17 rows: err = %v, want ErrInvalidLayout", err)
	}
}

func TestFromImage_Offset(t *testing.T) {
	// A sub-image keeps its own origin.
	big := image.NewGray(image.Rect(0, 0, 200, 40))
	for x := 16; x < 24; x++ {
		for y := 10; y < 18; y++ {
			big.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	sub := big.SubImage(image.Rect(8, 10, 8+128, 18))
	a, err := FromImage(sub, 8)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if n := litPixels(a.Glyph(1)); n != 64 {
		t.Errorf("glyph 1 lit = %d, want 64", n)
	}
}
