// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel runs CPU rendering work across goroutines.
//
// Images are split into horizontal bands of whole rows. Bands write disjoint
// pixel rows, so no locking is needed around the destination image.
package parallel
