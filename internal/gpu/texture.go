// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// texture2D is a single-mip 2D texture with its default view.
type texture2D struct {
	label   string
	format  gputypes.TextureFormat
	usage   gputypes.TextureUsage
	width   uint32
	height  uint32
	texture hal.Texture
	view    hal.TextureView
}

// createTexture2D allocates a texture and view. A partially created texture
// is released before returning an error.
func createTexture2D(device hal.Device, label string, width, height uint32,
	format gputypes.TextureFormat, usage gputypes.TextureUsage) (*texture2D, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %s %dx%d", ErrInvalidDimensions, label, width, height)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureCreate, label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("%w: %s view: %w", ErrTextureCreate, label, err)
	}

	return &texture2D{
		label:   label,
		format:  format,
		usage:   usage,
		width:   width,
		height:  height,
		texture: tex,
		view:    view,
	}, nil
}

// write uploads tightly packed rows covering the whole texture.
func (t *texture2D) write(queue hal.Queue, data []byte, bytesPerPixel uint32) error {
	err := queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  t.width * bytesPerPixel,
			RowsPerImage: t.height,
		},
		&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", t.label, err)
	}
	return nil
}

// destroy releases the view and texture in reverse creation order.
func (t *texture2D) destroy(device hal.Device) {
	if t == nil || device == nil {
		return
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// textureBinding returns a bind group entry exposing t at unit.
func textureBinding(unit TextureUnit, t *texture2D) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding:  uint32(unit),
		Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()},
	}
}

// textureLayoutEntry describes a sampled 2D float texture at unit.
func textureLayoutEntry(unit TextureUnit) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    uint32(unit),
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	}
}
