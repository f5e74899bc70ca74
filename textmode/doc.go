// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package textmode holds the CPU side of the text-mode screen: the cell grid,
// the glyph addressing scheme shared with the compositor shader, and a
// reference decoder that reproduces the shader's per-pixel output.
//
// # Glyph addressing
//
// Every cell stores one byte b. The glyph for b sits in a font atlas laid out
// as 16 columns of 8x8 glyphs:
//
//	column = b & 0x0F                  (x origin = column * 8)
//	row    = (b & 0xF0) >> 1            (y origin, in pixels)
//
// so the high nibble selects one of 16 glyph rows, each 8 pixels tall. Bytes
// whose row lies beyond the atlas are clamped to its last texel row, matching
// the compositor shader.
//
// # Character encoding
//
// [Encode] maps text to glyph indices for an atlas whose first glyph is the
// space character. Text is decomposed (NFKD) and combining marks dropped, so
// accented Latin letters fall back to their base letter.
package textmode
