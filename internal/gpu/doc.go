// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu implements the two render passes of the retro pipeline on the
// gogpu/wgpu HAL.
//
// This is an internal package used by the retro package. It works directly
// on hal.Device and hal.Queue, so any backend the HAL offers (Vulkan, Metal,
// DX12, or the noop backend used in tests) can drive it.
//
// # Architecture Overview
//
// A frame is two passes recorded into one command encoder:
//
//	CellGrid + FontAtlas -> Compositor -> VirtualScreen -> Presenter -> window
//
// Key components:
//
//   - TextureUnitRegistry: stable binding slots for named textures
//   - VirtualScreen: fixed-resolution RGBA render target
//   - CellGridTexture: one R8 texel per character cell, re-uploaded when dirty
//   - FontTexture: the 1-bit glyph atlas as an R8 texture
//   - Compositor: draws the cell grid into the virtual screen
//   - Presenter: letterboxes the virtual screen into the window with the
//     seam filter
//
// # Shaders
//
// The WGSL sources under shaders/retro are templates. Texture unit numbers,
// the glyph size, and palette constants are substituted before compilation,
// and every program is validated by naga before the device sees it. A
// program that fails either step yields a *ShaderError carrying the
// generated source.
//
// # Texture Units
//
// Bind group 0 holds the per-pass uniform and sampler. Bind group 1 holds
// the pass textures, each at the binding index of its texture unit:
//
//	screen = 0, font = 1, map = 2
//
// # Headless Use
//
// OpenDevice opens a Vulkan adapter without a window, and OffscreenSurface
// stands in for a swapchain. Readback and CaptureScreen copy textures back
// to the CPU for inspection.
//
// # Logging
//
// The package logs through the logger installed with SetLogger. Nothing is
// logged by default.
package gpu
