// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter is the CPU reference for the presenter's pixel-art
// magnification filter.
//
// The presenter samples the virtual screen bilinearly, but pulls every
// sample toward the nearest texel center except within half a destination
// pixel of a texel boundary (a seam). Pixels far from a seam land exactly on
// a texel center and are crisp; the blend band straddling each seam is about
// one destination pixel wide at any magnification, integer or not.
//
// For a destination pixel whose interpolated virtual-screen pixel coordinate
// is p and whose screen-space derivative magnitude is d (virtual pixels per
// destination pixel), per axis:
//
//	seam   = round(p)
//	offset = clamp((p - seam) / d, -0.5, 0.5)
//	uv     = (seam + offset) / screenSize
//
// The presenter's fragment shader evaluates the same expression. WGSL's
// round() breaks ties to even while [SeamCoord] rounds half away from zero;
// a tie puts p exactly on a texel center, where both choices produce the same
// sample.
package filter
