// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"image"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SubmitTimeout bounds how long Submit waits for the GPU.
const SubmitTimeout = 5 * time.Second

// submitPollInterval is the sleep between completion polls.
const submitPollInterval = 100 * time.Microsecond

// Submit records commands with record into a fresh encoder, submits them and
// waits for completion.
func Submit(device hal.Device, queue hal.Queue, label string, record func(hal.CommandEncoder) error) error {
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	if err := record(encoder); err != nil {
		encoder.DiscardEncoding()
		return err
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}

	index, err := queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("submit: %w", err)
	}
	if err := waitSubmission(queue, index, SubmitTimeout); err != nil {
		// The GPU may still own the command buffer; leak it rather than
		// free it under the GPU.
		return err
	}
	device.FreeCommandBuffer(cmdBuf)
	return nil
}

// waitSubmission polls queue until submission index has completed.
func waitSubmission(queue hal.Queue, index uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d", ErrWaitTimeout, index)
		}
		time.Sleep(submitPollInterval)
	}
	return nil
}

// copyPitchAlignment is the row pitch alignment required for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// Readback copies a 4-byte-per-pixel texture into an RGBA image. lastUsage
// is the usage the texture was last used with; the texture is returned to
// that usage afterwards. BGRA formats are swizzled to RGBA.
func Readback(device hal.Device, queue hal.Queue, tex hal.Texture, format gputypes.TextureFormat,
	width, height int, lastUsage gputypes.TextureUsage) (*image.RGBA, error) {
	return readback(device, queue, tex, format, width, height, lastUsage, lastUsage)
}

// readback transitions tex from before to CopySrc, copies it out and leaves
// it in after.
func readback(device hal.Device, queue hal.Queue, tex hal.Texture, format gputypes.TextureFormat,
	width, height int, before, after gputypes.TextureUsage) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: readback %dx%d", ErrInvalidDimensions, width, height)
	}
	w, h := uint32(width), uint32(height) //nolint:gosec // validated positive
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "readback_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	err = Submit(device, queue, "readback", func(encoder hal.CommandEncoder) error {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: before,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: after,
			},
		}})
		return nil
	})
	if err != nil {
		return nil, err
	}

	mapping, err := device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	if mapping.Ptr == nil {
		_ = device.UnmapBuffer(staging)
		return nil, fmt.Errorf("map staging buffer: %w", hal.ErrInvalidMapRange)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bgra := format == gputypes.TextureFormatBGRA8Unorm || format == gputypes.TextureFormatBGRA8UnormSrgb
	for row := 0; row < height; row++ {
		src := data[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		copy(dst, src)
		if bgra {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	if err := device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return img, nil
}

// CaptureScreen reads the virtual screen back into an image. The screen is
// copied from whatever usage its last pass left it in and is left sampled,
// ready for the next presentation.
func CaptureScreen(device hal.Device, queue hal.Queue, screen *VirtualScreen) (*image.RGBA, error) {
	w, h := screen.Size()
	img, err := readback(device, queue, screen.Texture(), ScreenFormat, w, h,
		screen.Usage(), gputypes.TextureUsageTextureBinding)
	if err != nil {
		return nil, err
	}
	screen.usage = gputypes.TextureUsageTextureBinding
	return img, nil
}
