// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

// MinBandRows is the smallest band handed to a worker. Shorter images are
// rendered on the calling goroutine.
const MinBandRows = 16

// Bands splits [0, height) into at most n contiguous bands of near-equal
// size, with no more bands than there are MinBandRows-row slices. Each band
// is [y0, y1).
func Bands(height, n int) [][2]int {
	if height <= 0 {
		return nil
	}
	n = max(min(n, (height+MinBandRows-1)/MinBandRows), 1)
	size := (height + n - 1) / n
	bands := make([][2]int, 0, n)
	for y := 0; y < height; y += size {
		bands = append(bands, [2]int{y, min(y+size, height)})
	}
	return bands
}

// Rows calls fn for each band of [0, height) and waits for all of them.
// Bands are twice the worker count so stealing can even out slow rows.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	bands := Bands(height, 2*p.Workers())
	if len(bands) <= 1 {
		if height > 0 {
			fn(0, height)
		}
		return
	}
	tasks := make([]func(), len(bands))
	for i, b := range bands {
		tasks[i] = func() { fn(b[0], b[1]) }
	}
	p.Do(tasks)
}
