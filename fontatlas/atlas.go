// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/retro/textmode"
)

// Errors returned when building an atlas.
var (
	// ErrInvalidCellSize is returned when the glyph cell size is not positive.
	ErrInvalidCellSize = errors.New("fontatlas: cell size must be positive")

	// ErrInvalidLayout is returned when an image does not hold whole rows of
	// 16 glyph cells, or holds more rows than a byte can address.
	ErrInvalidLayout = errors.New("fontatlas: image is not a 16-column glyph sheet")
)

// Threshold is the coverage at or above which a pixel counts as lit.
const Threshold = 0x80

// Atlas is an immutable glyph sheet.
type Atlas struct {
	img *image.Gray
}

func newAtlas(rows int) *Atlas {
	return &Atlas{img: image.NewGray(image.Rect(0, 0,
		textmode.AtlasColumns*textmode.GlyphSize, rows*textmode.GlyphSize))}
}

// FromImage converts a bitmap font sheet into an atlas. The sheet holds 16
// columns of cellSize x cellSize glyphs; each glyph is resampled to 8x8 with
// nearest-neighbor filtering and thresholded on luminance times alpha.
func FromImage(img image.Image, cellSize int) (*Atlas, error) {
	if cellSize <= 0 {
		return nil, ErrInvalidCellSize
	}
	b := img.Bounds()
	cols, rows := b.Dx()/cellSize, b.Dy()/cellSize
	if cols != textmode.AtlasColumns || rows < 1 || rows > textmode.MaxAtlasRows {
		return nil, fmt.Errorf("%w: %dx%d pixels with %d-pixel cells", ErrInvalidLayout, b.Dx(), b.Dy(), cellSize)
	}

	a := newAtlas(rows)
	src := image.Rect(b.Min.X, b.Min.Y, b.Min.X+cols*cellSize, b.Min.Y+rows*cellSize)
	scaled := image.NewNRGBA(a.img.Bounds())
	draw.Draw(scaled, scaled.Bounds(), image.Transparent, image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, src, xdraw.Over, nil)

	for i := 0; i < len(a.img.Pix); i++ {
		p := scaled.Pix[i*4 : i*4+4]
		lum := (299*uint32(p[0]) + 587*uint32(p[1]) + 114*uint32(p[2])) / 1000
		a.img.Pix[i] = binarize(uint8(lum * uint32(p[3]) / 255))
	}
	return a, nil
}

// Image returns the atlas pixels. The image must not be modified.
func (a *Atlas) Image() *image.Gray {
	return a.img
}

// Width returns the atlas width in pixels.
func (a *Atlas) Width() int {
	return a.img.Bounds().Dx()
}

// Height returns the atlas height in pixels.
func (a *Atlas) Height() int {
	return a.img.Bounds().Dy()
}

// Columns returns the number of glyphs per row.
func (a *Atlas) Columns() int {
	return textmode.AtlasColumns
}

// Rows returns the number of glyph rows.
func (a *Atlas) Rows() int {
	return a.Height() / textmode.GlyphSize
}

// GlyphCount returns the number of glyph cells.
func (a *Atlas) GlyphCount() int {
	return a.Columns() * a.Rows()
}

// Pix returns tightly packed rows of one byte per pixel, ready for upload.
func (a *Atlas) Pix() []byte {
	return a.img.Pix
}

// Glyph returns the 8x8 cell for glyph index b.
func (a *Atlas) Glyph(b byte) *image.Gray {
	o := textmode.GlyphOrigin(b)
	r := image.Rect(o.X, o.Y, o.X+textmode.GlyphSize, o.Y+textmode.GlyphSize)
	if !r.In(a.img.Bounds()) {
		return image.NewGray(image.Rect(0, 0, textmode.GlyphSize, textmode.GlyphSize))
	}
	return a.img.SubImage(r).(*image.Gray)
}

func binarize(v uint8) uint8 {
	if v >= Threshold {
		return 0xFF
	}
	return 0
}
