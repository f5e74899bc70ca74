// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package retro renders a retro text-mode display on the GPU.
//
// A fixed-resolution virtual screen (320x240 by default) is filled from a
// grid of 8x8 character cells, then scaled into the host window with
// letterboxing so its aspect ratio never changes. The scaling filter keeps
// pixel art crisp at any magnification and blends only across a band about
// one window pixel wide at each texel seam.
//
// # Quick Start
//
//	dev, err := retro.OpenDevice() // or retro.NewFromProvider(host)
//	p, err := retro.New(dev.Device, dev.Queue,
//	    retro.WithWindowSize(1280, 960),
//	)
//	defer p.Close()
//
//	p.Grid().WriteString(0, 0, "READY.")
//	err = p.DrawFrame(surfaceView, surfaceW, surfaceH)
//
// # Resizing
//
// [Pipeline.ResizeWindow] only rewrites the letterbox quad.
// [Pipeline.ResizeScreen] reallocates the virtual screen and cell grid and
// regenerates the grid contents.
//
// # Frame loop
//
// [Driver] polls an [EventSource], applies [ResizeEvent] and
// [ScreenModeEvent] in order, draws a frame and presents it on a [Surface].
//
// # Logging
//
// retro is silent by default. Use [SetLogger] to route lifecycle events and
// shader diagnostics to a slog.Logger.
package retro
