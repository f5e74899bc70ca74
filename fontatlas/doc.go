// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fontatlas builds the single-channel glyph atlas sampled by the
// text-mode compositor.
//
// An atlas is a grayscale image of 16 columns of 8x8 glyph cells. Glyph i
// sits at column i%16, row i/16; a cell byte b addresses glyph b through the
// nibble scheme documented in package textmode. Coverage is stored as 0 or
// 255 so the compositor produces hard-edged text.
//
// [Default] rasterizes the printable ASCII range of the Go Mono typeface.
// [FromImage] loads a pre-drawn bitmap font sheet of any cell size.
package fontatlas
