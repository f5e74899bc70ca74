// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package retro

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Event is a host notification consumed by Driver.
type Event interface {
	event()
}

// ResizeEvent reports a new window size.
type ResizeEvent struct {
	Width, Height int
}

// ScreenModeEvent requests a new virtual screen resolution.
type ScreenModeEvent struct {
	Width, Height int
}

// QuitEvent ends the frame loop.
type QuitEvent struct{}

func (ResizeEvent) event()     {}
func (ScreenModeEvent) event() {}
func (QuitEvent) event()       {}

// EventSource yields the events that arrived since the previous poll.
type EventSource interface {
	PollEvents() []Event
}

// Surface is the window surface frames are presented to.
type Surface interface {
	// Acquire returns the view for the next frame.
	Acquire() (hal.TextureView, error)

	// Present shows the frame rendered into the last acquired view.
	Present() error

	// Size returns the extent of the views Acquire returns.
	Size() (width, height int)
}

// resizableSurface is a Surface that follows the window size.
type resizableSurface interface {
	Resize(width, height int) error
}

// ErrQuit is returned by Step once a QuitEvent has been handled.
var ErrQuit = errors.New("retro: quit requested")

// Driver runs the single-threaded frame loop. Each step applies pending
// events before drawing and presenting one frame.
type Driver struct {
	Pipeline *Pipeline
	Events   EventSource
	Surface  Surface

	// Update, if set, runs after events are applied and before drawing.
	// It may edit the cell grid for the coming frame.
	Update func(p *Pipeline) error

	frames uint64
}

// Step handles pending events and draws one frame. Events are applied in
// arrival order before drawing, so a resize seen in this step affects this
// frame.
func (d *Driver) Step() error {
	if d.Events != nil {
		for _, ev := range d.Events.PollEvents() {
			if err := d.handle(ev); err != nil {
				return err
			}
		}
	}
	if d.Update != nil {
		if err := d.Update(d.Pipeline); err != nil {
			return err
		}
	}

	view, err := d.Surface.Acquire()
	if err != nil {
		return fmt.Errorf("retro: acquire surface: %w", err)
	}
	w, h := d.Surface.Size()
	if err := d.Pipeline.DrawFrame(view, w, h); err != nil {
		return err
	}
	if err := d.Surface.Present(); err != nil {
		return fmt.Errorf("retro: present: %w", err)
	}
	d.frames++
	return nil
}

func (d *Driver) handle(ev Event) error {
	switch e := ev.(type) {
	case ResizeEvent:
		if err := d.Pipeline.ResizeWindow(e.Width, e.Height); err != nil {
			return err
		}
		if rs, ok := d.Surface.(resizableSurface); ok {
			return rs.Resize(e.Width, e.Height)
		}
		return nil
	case ScreenModeEvent:
		return d.Pipeline.ResizeScreen(e.Width, e.Height)
	case QuitEvent:
		return ErrQuit
	default:
		Logger().Debug("ignoring event", "type", fmt.Sprintf("%T", ev))
		return nil
	}
}

// Run steps until ctx is done or a QuitEvent arrives. A quit returns nil;
// cancellation returns the context's error.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Step(); err != nil {
			if errors.Is(err, ErrQuit) {
				Logger().Info("frame loop finished", "frames", d.frames)
				return nil
			}
			return err
		}
	}
}

// Frames returns the number of frames presented.
func (d *Driver) Frames() uint64 {
	return d.frames
}
