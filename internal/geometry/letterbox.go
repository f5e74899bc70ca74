// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geometry

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// VertexStride is the byte stride of one serialized vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
const VertexStride = 16

// VertexCount is the number of vertices in a quad strip.
const VertexCount = 4

// QuadSize is the byte size of a serialized quad.
const QuadSize = VertexCount * VertexStride

// Vertex is one quad corner.
type Vertex struct {
	// X, Y is the position in normalized device coordinates.
	X, Y float32

	// U, V is the texture coordinate into the virtual screen.
	U, V float32
}

// Quad is a four-vertex triangle strip.
type Quad [VertexCount]Vertex

// Fixed per-corner texture coordinates.
var (
	uvTopRight    = [2]float32{1, 0}
	uvTopLeft     = [2]float32{0, 0}
	uvBottomRight = [2]float32{1, 1}
	uvBottomLeft  = [2]float32{0, 1}
)

// HalfExtents returns the letterbox half-extents in normalized device
// coordinates.
//
// When the window is relatively narrower than the virtual screen
// (windowAspect < screenAspect) the horizontal half-extent is marginScale and
// the vertical one shrinks; otherwise the vertical half-extent is marginScale
// and the horizontal one shrinks. Both aspects must be positive.
func HalfExtents(windowAspect, screenAspect, marginScale float32) (hx, hy float32) {
	if windowAspect < screenAspect {
		return marginScale, marginScale * windowAspect / screenAspect
	}
	return marginScale * screenAspect / windowAspect, marginScale
}

// ComputeLetterbox returns the presenter quad for the given aspects.
func ComputeLetterbox(windowAspect, screenAspect, marginScale float32) Quad {
	hx, hy := HalfExtents(windowAspect, screenAspect, marginScale)
	return centered(hx, hy)
}

// FullTarget returns the quad covering the whole render target.
func FullTarget() Quad {
	return centered(1, 1)
}

func centered(hx, hy float32) Quad {
	return Quad{
		{X: hx, Y: hy, U: uvTopRight[0], V: uvTopRight[1]},
		{X: -hx, Y: hy, U: uvTopLeft[0], V: uvTopLeft[1]},
		{X: hx, Y: -hy, U: uvBottomRight[0], V: uvBottomRight[1]},
		{X: -hx, Y: -hy, U: uvBottomLeft[0], V: uvBottomLeft[1]},
	}
}

// MarginScale returns the shrink factor applied to the letterbox quad.
// Windows wider than threshold get margin; small windows use the full
// viewport.
func MarginScale(windowWidth, threshold int, margin float32) float32 {
	if windowWidth > threshold {
		return margin
	}
	return 1
}

// Aspect returns width/height as float32. Callers validate that both are
// positive.
func Aspect(width, height int) float32 {
	return float32(width) / float32(height)
}

// Extent returns the quad's half-extents, read back from its corners.
func (q Quad) Extent() (hx, hy float32) {
	xmin, xmax := q[0].X, q[0].X
	ymin, ymax := q[0].Y, q[0].Y
	for _, v := range q[1:] {
		xmin, xmax = math32.Min(xmin, v.X), math32.Max(xmax, v.X)
		ymin, ymax = math32.Min(ymin, v.Y), math32.Max(ymax, v.Y)
	}
	return (xmax - xmin) / 2, (ymax - ymin) / 2
}

// PixelAspect returns the width/height ratio of the quad once it is mapped
// onto a viewport with the given aspect.
func (q Quad) PixelAspect(windowAspect float32) float32 {
	hx, hy := q.Extent()
	if hy == 0 {
		return 0
	}
	return hx / hy * windowAspect
}

// Bytes serializes the quad into little-endian vertex data matching the
// pipeline's vertex buffer layout.
func (q Quad) Bytes() []byte {
	buf := make([]byte, QuadSize)
	for i, v := range q {
		writeVertex(buf[i*VertexStride:], v)
	}
	return buf
}

func writeVertex(buf []byte, v Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.U))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.V))
}
