// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textmode

import "math/rand/v2"

// Grid is a two-dimensional array of glyph indices, one byte per cell, stored
// row-major with the first row at the top of the screen.
//
// Grid tracks whether its contents changed since the last upload so the
// compositor only rewrites the GPU copy when needed. Grid is not safe for
// concurrent use.
type Grid struct {
	cols, rows int
	cells      []byte
	dirty      bool
}

// NewGrid creates a zero-filled grid. Non-positive dimensions yield an empty
// grid.
func NewGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]byte, cols*rows),
		dirty: true,
	}
}

// NewGridForScreen creates a grid covering a screen of the given pixel size.
func NewGridForScreen(width, height int) *Grid {
	return NewGrid(CellDims(width, height))
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool {
	return len(g.cells) == 0
}

func (g *Grid) in(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// At returns the byte at (col, row), or 0 outside the grid.
func (g *Grid) At(col, row int) byte {
	if !g.in(col, row) {
		return 0
	}
	return g.cells[row*g.cols+col]
}

// Set stores b at (col, row). It reports false when the cell is outside the
// grid.
func (g *Grid) Set(col, row int, b byte) bool {
	if !g.in(col, row) {
		return false
	}
	i := row*g.cols + col
	if g.cells[i] != b {
		g.cells[i] = b
		g.dirty = true
	}
	return true
}

// Fill sets every cell to b.
func (g *Grid) Fill(b byte) {
	for i := range g.cells {
		g.cells[i] = b
	}
	g.dirty = true
}

// Randomize fills the grid with pseudo-random bytes drawn from the full byte
// range. The same seed always yields the same contents.
func (g *Grid) Randomize(seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range g.cells {
		g.cells[i] = byte(r.UintN(256))
	}
	g.dirty = true
}

// WriteString encodes s and writes it starting at (col, row), stopping at the
// end of the row. It returns the number of cells written.
func (g *Grid) WriteString(col, row int, s string) int {
	if row < 0 || row >= g.rows || col >= g.cols {
		return 0
	}
	n := 0
	for _, b := range Encode(s) {
		if col >= g.cols {
			break
		}
		if col >= 0 {
			g.Set(col, row, b)
			n++
		}
		col++
	}
	return n
}

// Bytes returns the backing cells in upload order. The slice aliases the
// grid.
func (g *Grid) Bytes() []byte {
	return g.cells
}

// Dirty reports whether the grid changed since the last MarkClean.
func (g *Grid) Dirty() bool {
	return g.dirty
}

// MarkClean records that the current contents have been uploaded.
func (g *Grid) MarkClean() {
	g.dirty = false
}

// MarkDirty forces the next upload, for example after the GPU copy was
// reallocated.
func (g *Grid) MarkDirty() {
	g.dirty = true
}
