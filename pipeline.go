// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/retro/fontatlas"
	"github.com/gogpu/retro/internal/geometry"
	"github.com/gogpu/retro/internal/gpu"
	"github.com/gogpu/retro/textmode"
)

// Pipeline renders a text-mode virtual screen and presents it letterboxed
// in a window.
//
// Each frame runs two passes: the compositor draws the cell grid into the
// virtual screen, then the presenter stretches the screen into the window
// through the magnification filter.
//
// A Pipeline is driven from one goroutine at a time; its methods serialize
// on an internal mutex.
type Pipeline struct {
	mu sync.Mutex

	cfg    Config
	device hal.Device
	queue  hal.Queue

	units      *gpu.TextureUnitRegistry
	screen     *gpu.VirtualScreen
	compositor *gpu.Compositor
	presenter  *gpu.Presenter
	grid       *textmode.Grid

	windowW, windowH int
	closed           bool
}

// New creates a pipeline on device and queue.
//
// Resources are created in this order: the virtual screen (texture unit 0),
// the compositor with the font atlas (unit 1) and cell grid (unit 2), then
// the presenter. Any failure releases what was already created.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Pipeline, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newPipeline(device, queue, cfg)
}

func newPipeline(device hal.Device, queue hal.Queue, cfg Config) (*Pipeline, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	atlas := cfg.Atlas
	if atlas == nil {
		var err error
		if atlas, err = fontatlas.Default(); err != nil {
			return nil, err
		}
	}

	p := &Pipeline{
		cfg:     cfg,
		device:  device,
		queue:   queue,
		units:   gpu.NewTextureUnitRegistry(),
		windowW: cfg.WindowWidth,
		windowH: cfg.WindowHeight,
	}

	var err error
	if p.screen, err = gpu.NewVirtualScreen(device, p.units, cfg.ScreenWidth, cfg.ScreenHeight); err != nil {
		return nil, fmt.Errorf("retro: virtual screen: %w", err)
	}
	p.grid = p.newGrid(cfg.ScreenWidth, cfg.ScreenHeight)
	if p.compositor, err = gpu.NewCompositor(device, queue, p.units, atlas, p.grid,
		cfg.ScreenWidth, cfg.ScreenHeight); err != nil {
		p.release()
		return nil, fmt.Errorf("retro: compositor: %w", err)
	}
	if p.presenter, err = gpu.NewPresenter(device, queue, p.units, cfg.SurfaceFormat,
		p.screen, p.letterbox()); err != nil {
		p.release()
		return nil, fmt.Errorf("retro: presenter: %w", err)
	}

	Logger().Info("retro pipeline ready",
		"screen", fmt.Sprintf("%dx%d", cfg.ScreenWidth, cfg.ScreenHeight),
		"window", fmt.Sprintf("%dx%d", p.windowW, p.windowH),
		"surface_format", cfg.SurfaceFormat)
	return p, nil
}

func (p *Pipeline) newGrid(width, height int) *textmode.Grid {
	g := textmode.NewGridForScreen(width, height)
	if p.cfg.RandomFill {
		g.Randomize(p.cfg.Seed)
	}
	return g
}

// letterbox computes the presenter quad for the current sizes.
func (p *Pipeline) letterbox() geometry.Quad {
	sw, sh := p.screen.Size()
	return geometry.ComputeLetterbox(
		geometry.Aspect(p.windowW, p.windowH),
		geometry.Aspect(sw, sh),
		geometry.MarginScale(p.windowW, p.cfg.MarginThreshold, p.cfg.Margin),
	)
}

// ResizeWindow records the new window size and rewrites the letterbox quad.
// Nothing is reallocated.
func (p *Pipeline) ResizeWindow(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidDimensions, width, height)
	}
	p.windowW, p.windowH = width, height
	if err := p.presenter.SetGeometry(p.letterbox()); err != nil {
		return fmt.Errorf("retro: letterbox: %w", err)
	}
	Logger().Info("window resized", "width", width, "height", height)
	return nil
}

// ResizeScreen changes the virtual screen resolution. The screen texture
// and cell grid are reallocated, the grid is regenerated, both programs
// receive the new screen size and the letterbox is recomputed.
//
// Invalid dimensions are rejected without side effects. Any later failure
// leaves GPU state half-replaced, so the pipeline releases its resources
// and every further call returns ErrClosed.
func (p *Pipeline) ResizeScreen(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidDimensions, width, height)
	}
	if err := p.resizeScreen(width, height); err != nil {
		Logger().Error("screen resize failed, closing pipeline",
			"width", width, "height", height, "err", err)
		p.release()
		p.closed = true
		return err
	}

	cols, rows := p.grid.Size()
	Logger().Info("screen resized", "width", width, "height", height, "cols", cols, "rows", rows)
	return nil
}

func (p *Pipeline) resizeScreen(width, height int) error {
	if err := p.screen.Resize(width, height); err != nil {
		return fmt.Errorf("retro: resize screen: %w", err)
	}
	if err := p.presenter.BindScreen(p.screen); err != nil {
		return fmt.Errorf("retro: rebind screen: %w", err)
	}
	p.grid = p.newGrid(width, height)
	if err := p.compositor.SetGrid(p.grid); err != nil {
		return fmt.Errorf("retro: resize grid: %w", err)
	}
	if err := p.compositor.SetScreenSize(width, height); err != nil {
		return fmt.Errorf("retro: screen size: %w", err)
	}
	if err := p.presenter.SetGeometry(p.letterbox()); err != nil {
		return fmt.Errorf("retro: letterbox: %w", err)
	}
	return nil
}

// Render records one frame into encoder: the compositing pass into the
// virtual screen followed by the presentation pass into target, which is
// targetW x targetH pixels. The presentation viewport is the window size
// clamped to the target, so a surface that lags a window resize is never
// drawn past its edge.
func (p *Pipeline) Render(encoder hal.CommandEncoder, target hal.TextureView, targetW, targetH int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if targetW <= 0 || targetH <= 0 {
		return fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, targetW, targetH)
	}
	if err := p.compositor.Render(encoder, p.screen, p.grid); err != nil {
		return fmt.Errorf("retro: composite: %w", err)
	}
	vw, vh := presentViewport(p.windowW, p.windowH, targetW, targetH)
	p.presenter.Render(encoder, target, vw, vh)
	return nil
}

// presentViewport clamps the window size to the target extent.
func presentViewport(windowW, windowH, targetW, targetH int) (width, height int) {
	return min(windowW, targetW), min(windowH, targetH)
}

// DrawFrame renders one frame into a targetW x targetH target and waits
// for the GPU to finish.
func (p *Pipeline) DrawFrame(target hal.TextureView, targetW, targetH int) error {
	return gpu.Submit(p.device, p.queue, "retro_frame", func(encoder hal.CommandEncoder) error {
		return p.Render(encoder, target, targetW, targetH)
	})
}

// CaptureScreen reads the virtual screen back as it was after the last
// frame.
func (p *Pipeline) CaptureScreen() (*image.RGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	return gpu.CaptureScreen(p.device, p.queue, p.screen)
}

// Grid returns the cell grid. Writes show up on the next frame. The grid is
// replaced by ResizeScreen.
func (p *Pipeline) Grid() *textmode.Grid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grid
}

// ScreenSize returns the virtual screen resolution.
func (p *Pipeline) ScreenSize() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.screen == nil {
		return 0, 0
	}
	return p.screen.Size()
}

// WindowSize returns the last window size given to the pipeline.
func (p *Pipeline) WindowSize() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.windowW, p.windowH
}

// Letterbox returns the half-extents of the presenter quad in normalized
// device coordinates.
func (p *Pipeline) Letterbox() (hx, hy float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.presenter == nil {
		return 0, 0
	}
	return p.presenter.Geometry().Extent()
}

// SurfaceFormat returns the window surface format the presenter targets.
func (p *Pipeline) SurfaceFormat() gputypes.TextureFormat {
	return p.cfg.SurfaceFormat
}

// TextureUnits returns the registered texture names in unit order.
func (p *Pipeline) TextureUnits() []string {
	return p.units.Names()
}

// Close releases all GPU resources. It is safe to call more than once.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.release()
	p.closed = true
	return nil
}

// release destroys resources in reverse creation order.
func (p *Pipeline) release() {
	if p.presenter != nil {
		p.presenter.Destroy()
		p.presenter = nil
	}
	if p.compositor != nil {
		p.compositor.Destroy()
		p.compositor = nil
	}
	if p.screen != nil {
		p.screen.Destroy()
		p.screen = nil
	}
}
