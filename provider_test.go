// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// halMockProvider also exposes HAL types, as gogpu's provider does.
type halMockProvider struct {
	mockProvider
	device any
	queue  any
}

func (m *halMockProvider) HalDevice() any { return m.device }
func (m *halMockProvider) HalQueue() any  { return m.queue }

func TestNewFromProviderWithoutHAL(t *testing.T) {
	_, err := NewFromProvider(&mockProvider{})
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewFromProvider() error = %v, want ErrNoDevice", err)
	}
}

func TestNewFromProviderNil(t *testing.T) {
	if _, err := NewFromProvider(nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewFromProvider(nil) error = %v, want ErrNoDevice", err)
	}
}

func TestNewFromProviderWrongHALTypes(t *testing.T) {
	p := &halMockProvider{device: "not a device", queue: 42}
	if _, err := NewFromProvider(p); !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewFromProvider() error = %v, want ErrNoDevice", err)
	}
}

func TestNewFromProviderSurfaceFormat(t *testing.T) {
	tests := []struct {
		name     string
		provided gputypes.TextureFormat
		want     gputypes.TextureFormat
	}{
		{"provider format", gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
		{"undefined keeps default", gputypes.TextureFormatUndefined, gputypes.TextureFormatBGRA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, queue, cleanup := newNoopDevice(t)
			defer cleanup()

			provider := &halMockProvider{
				mockProvider: mockProvider{format: tt.provided},
				device:       device,
				queue:        queue,
			}
			p, err := NewFromProvider(provider)
			if err != nil {
				if msg := err.Error(); strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
					t.Skipf("Skipping: naga feature not yet implemented: %v", err)
				}
				t.Fatalf("NewFromProvider() error = %v", err)
			}
			defer p.Close()

			if got := p.SurfaceFormat(); got != tt.want {
				t.Errorf("SurfaceFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFromProviderOptionOverridesFormat(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	provider := &halMockProvider{
		mockProvider: mockProvider{format: gputypes.TextureFormatBGRA8Unorm},
		device:       device,
		queue:        queue,
	}
	p, err := NewFromProvider(provider, WithSurfaceFormat(gputypes.TextureFormatRGBA8Unorm))
	if err != nil {
		if msg := err.Error(); strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	defer p.Close()

	if got := p.SurfaceFormat(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("SurfaceFormat() = %v, want RGBA8Unorm", got)
	}
}
