// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// newNoopDevice creates a noop device and queue for testing.
func newNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTestPipeline creates a pipeline on a noop device. Tests are skipped
// when the WGSL front end lacks a feature the shaders need.
func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, func()) {
	t.Helper()
	device, queue, cleanup := newNoopDevice(t)
	p, err := New(device, queue, opts...)
	if err != nil {
		cleanup()
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("New() error = %v", err)
	}
	return p, func() {
		_ = p.Close()
		cleanup()
	}
}

// failingShaderDevice fails every shader module creation.
type failingShaderDevice struct {
	hal.Device
}

func (d *failingShaderDevice) CreateShaderModule(*hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	return nil, errShaderBackend
}

var errShaderBackend = errors.New("injected shader module failure")

// trackingDevice counts texture allocations, remembers buffers by label and
// can start failing texture creation on demand.
type trackingDevice struct {
	hal.Device
	textures    int
	buffers     map[string]hal.Buffer
	failTexture bool
}

func newTrackingDevice(device hal.Device) *trackingDevice {
	return &trackingDevice{Device: device, buffers: make(map[string]hal.Buffer)}
}

var errTextureBackend = errors.New("injected texture failure")

func (d *trackingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTexture {
		return nil, errTextureBackend
	}
	d.textures++
	return d.Device.CreateTexture(desc)
}

func (d *trackingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	buf, err := d.Device.CreateBuffer(desc)
	if err == nil {
		d.buffers[desc.Label] = buf
	}
	return buf, err
}

// screenSizeUniform reads the screen_size uniform from the buffer created
// under label.
func (d *trackingDevice) screenSizeUniform(t *testing.T, label string) (w, h float32) {
	t.Helper()
	buf, ok := d.buffers[label]
	if !ok {
		t.Fatalf("no buffer labeled %q", label)
	}
	m, err := d.MapBuffer(buf, 0, 8)
	if err != nil {
		t.Fatalf("MapBuffer(%q) error = %v", label, err)
	}
	defer func() { _ = d.UnmapBuffer(buf) }()
	data := unsafe.Slice((*byte)(m.Ptr), 8)
	w = math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	h = math.Float32frombits(binary.LittleEndian.Uint32(data[4:8]))
	return w, h
}

// newTrackedPipeline creates a pipeline on a tracking noop device.
func newTrackedPipeline(t *testing.T, opts ...Option) (*Pipeline, *trackingDevice, func()) {
	t.Helper()
	device, queue, cleanup := newNoopDevice(t)
	td := newTrackingDevice(device)
	p, err := New(td, queue, opts...)
	if err != nil {
		cleanup()
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("New() error = %v", err)
	}
	return p, td, func() {
		_ = p.Close()
		cleanup()
	}
}

// viewportEncoder records the viewport each render pass sets, by pass
// label.
type viewportEncoder struct {
	hal.CommandEncoder
	viewports map[string][2]float32
}

func (e *viewportEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	return &viewportPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), label: desc.Label, enc: e}
}

type viewportPass struct {
	hal.RenderPassEncoder
	label string
	enc   *viewportEncoder
}

func (p *viewportPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.enc.viewports[p.label] = [2]float32{width, height}
	p.RenderPassEncoder.SetViewport(x, y, width, height, minDepth, maxDepth)
}
