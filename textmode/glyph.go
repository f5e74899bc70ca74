// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textmode

import "image"

const (
	// GlyphSize is the width and height of one glyph cell in pixels.
	GlyphSize = 8

	// AtlasColumns is the number of glyphs per atlas row.
	AtlasColumns = 16

	// MaxAtlasRows is the number of glyph rows a byte can address.
	MaxAtlasRows = 16
)

// GlyphColumn returns the atlas column selected by the low nibble of b.
func GlyphColumn(b byte) int {
	return int(b & 0x0F)
}

// GlyphRowOrigin returns the y origin in pixels of the glyph row selected by
// the high nibble of b.
func GlyphRowOrigin(b byte) int {
	return int(b&0xF0) >> 1
}

// GlyphOrigin returns the top-left atlas pixel of the glyph for b.
func GlyphOrigin(b byte) image.Point {
	return image.Pt(GlyphColumn(b)*GlyphSize, GlyphRowOrigin(b))
}

// CellDims returns the grid size covering a screen of the given pixel size.
// Partial cells on the right and bottom edges are dropped.
func CellDims(width, height int) (cols, rows int) {
	return width / GlyphSize, height / GlyphSize
}

// AtlasTexel returns the atlas pixel sampled for screen pixel (px, py) when
// the covering cell holds b. The result is clamped into an atlas of
// atlasW x atlasH pixels.
func AtlasTexel(b byte, px, py, atlasW, atlasH int) image.Point {
	o := GlyphOrigin(b)
	return image.Pt(
		clampInt(o.X+px%GlyphSize, 0, atlasW-1),
		clampInt(o.Y+py%GlyphSize, 0, atlasH-1),
	)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
