// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/retro/fontatlas"
)

// Config holds the pipeline configuration.
type Config struct {
	// WindowWidth and WindowHeight are the initial window size in pixels.
	// Default: 640x480
	WindowWidth, WindowHeight int

	// ScreenWidth and ScreenHeight are the virtual screen resolution.
	// Default: 320x240
	ScreenWidth, ScreenHeight int

	// Margin shrinks the letterbox quad when the window is wider than
	// MarginThreshold pixels. Default: 0.95
	Margin float32

	// MarginThreshold is the window width above which Margin applies.
	// Default: 320
	MarginThreshold int

	// SurfaceFormat is the pixel format of the window surface.
	// Default: BGRA8Unorm
	SurfaceFormat gputypes.TextureFormat

	// RandomFill fills the cell grid with random bytes whenever it is
	// (re)allocated. Default: true
	RandomFill bool

	// Seed seeds RandomFill. Default: 1
	Seed uint64

	// Atlas is the glyph atlas. Nil selects fontatlas.Default.
	Atlas *fontatlas.Atlas
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		WindowWidth:     640,
		WindowHeight:    480,
		ScreenWidth:     320,
		ScreenHeight:    240,
		Margin:          0.95,
		MarginThreshold: 320,
		SurfaceFormat:   gputypes.TextureFormatBGRA8Unorm,
		RandomFill:      true,
		Seed:            1,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidDimensions, c.WindowWidth, c.WindowHeight)
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidDimensions, c.ScreenWidth, c.ScreenHeight)
	case c.Margin <= 0 || c.Margin > 1:
		return fmt.Errorf("retro: margin %v outside (0, 1]", c.Margin)
	}
	return nil
}

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := retro.New(device, queue,
//	    retro.WithScreenSize(640, 200),
//	    retro.WithWindowSize(1280, 800),
//	)
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(o *Config) {
		*o = c
	}
}

// WithWindowSize sets the initial window size.
func WithWindowSize(width, height int) Option {
	return func(o *Config) {
		o.WindowWidth, o.WindowHeight = width, height
	}
}

// WithScreenSize sets the initial virtual screen resolution.
func WithScreenSize(width, height int) Option {
	return func(o *Config) {
		o.ScreenWidth, o.ScreenHeight = width, height
	}
}

// WithMargin sets the letterbox margin scale and the window width above
// which it applies.
func WithMargin(margin float32, threshold int) Option {
	return func(o *Config) {
		o.Margin, o.MarginThreshold = margin, threshold
	}
}

// WithSurfaceFormat sets the window surface pixel format.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *Config) {
		o.SurfaceFormat = f
	}
}

// WithRandomFill enables or disables random grid contents and sets the seed.
func WithRandomFill(enabled bool, seed uint64) Option {
	return func(o *Config) {
		o.RandomFill, o.Seed = enabled, seed
	}
}

// WithAtlas sets the glyph atlas.
func WithAtlas(a *fontatlas.Atlas) Option {
	return func(o *Config) {
		o.Atlas = a
	}
}
