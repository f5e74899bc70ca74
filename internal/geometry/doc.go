// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geometry derives the quads the text-mode pipeline draws.
//
// Two quads exist. The compositor draws a full-target quad into the virtual
// screen; the presenter draws a letterbox quad into the window whose aspect
// ratio always equals the virtual screen's, leaving uniform bars on the
// non-matching axis.
//
// Quads are triangle strips in the order top-right, top-left, bottom-right,
// bottom-left. Positions are in normalized device coordinates (Y up) and
// texture coordinates put (0,0) at the top-left of the virtual screen, so
// the winding and texture orientation never depend on which letterbox branch
// was taken.
package geometry
