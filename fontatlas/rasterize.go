// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/retro/textmode"
)

// DefaultSize is the pixel size Go Mono is rasterized at for the default
// atlas.
const DefaultSize = 8

var defaultAtlas = sync.OnceValues(func() (*Atlas, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse gomono: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    DefaultSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fontatlas: gomono face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()
	return FromFace(face, textmode.FirstChar, textmode.LastChar-textmode.FirstChar+1)
})

// Default returns the built-in atlas: printable ASCII from space to tilde
// drawn with Go Mono, 16 columns by 6 rows. The returned atlas is shared.
func Default() (*Atlas, error) {
	return defaultAtlas()
}

// FromFace rasterizes count consecutive runes starting at first into an
// atlas. Each glyph is centered horizontally in its 8x8 cell and sits on a
// common baseline.
func FromFace(face font.Face, first rune, count int) (*Atlas, error) {
	rows := (count + textmode.AtlasColumns - 1) / textmode.AtlasColumns
	if count <= 0 || rows > textmode.MaxAtlasRows {
		return nil, fmt.Errorf("%w: %d glyphs", ErrInvalidLayout, count)
	}

	a := newAtlas(rows)
	baseline := baselineFor(face.Metrics())
	cell := image.NewAlpha(image.Rect(0, 0, textmode.GlyphSize, textmode.GlyphSize))

	for i := 0; i < count; i++ {
		r := first + rune(i)
		clear(cell.Pix)

		d := font.Drawer{Dst: cell, Src: image.White, Face: face}
		adv := d.MeasureString(string(r))
		d.Dot = fixed.Point26_6{
			X: (fixed.I(textmode.GlyphSize) - adv) / 2,
			Y: baseline,
		}
		d.DrawString(string(r))

		o := textmode.GlyphOrigin(byte(i))
		for y := 0; y < textmode.GlyphSize; y++ {
			for x := 0; x < textmode.GlyphSize; x++ {
				a.img.Pix[(o.Y+y)*a.img.Stride+o.X+x] = binarize(cell.AlphaAt(x, y).A)
			}
		}
	}
	return a, nil
}

// baselineFor keeps descenders inside the cell.
func baselineFor(m font.Metrics) fixed.Int26_6 {
	descent := m.Descent.Ceil()
	if descent >= textmode.GlyphSize {
		descent = 1
	}
	return fixed.I(textmode.GlyphSize - descent)
}
