// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command retroshot renders scripted frames of the retro text-mode pipeline
// on a headless Vulkan device and writes them as PNG files.
//
// Usage:
//
//	retroshot [-config scene.toml] [-out dir] [-frames n] [-check] [-debug]
//
// Each frame produces two images: screen-NN.png holds the virtual screen at
// its native resolution and frame-NN.png holds the letterboxed window. With
// -check every virtual screen capture must match the CPU decode of the cell
// grid exactly; window captures are compared with a small tolerance and
// differences are logged.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/retro"
)

// frameTolerance absorbs filter rounding differences between the GPU
// sampler and the CPU reference.
const frameTolerance = 2

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("retroshot: %v", err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("retroshot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "scene file (.toml, .yaml)")
		outDir     = fs.String("out", ".", "output directory")
		frames     = fs.Int("frames", 1, "frames to render when the scene has none")
		seed       = fs.Uint64("seed", 0, "random fill seed (0 keeps the default)")
		check      = fs.Bool("check", false, "compare captures against the CPU reference decode")
		debug      = fs.Bool("debug", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	retro.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	sc := &scene{}
	if *configPath != "" {
		var err error
		if sc, err = loadScene(*configPath); err != nil {
			return err
		}
	}
	if *seed != 0 {
		sc.Seed = *seed
	}
	if len(sc.Frames) == 0 {
		sc.Frames = make([]frameScript, max(*frames, 1))
	}

	cfg := retro.DefaultConfig()
	sc.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	var ref *reference
	if *check {
		var err error
		if ref, err = newReference(cfg); err != nil {
			return err
		}
	}

	dev, err := retro.OpenDevice()
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	defer dev.Close()

	p, err := retro.New(dev.Device, dev.Queue, retro.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer p.Close()

	surface, err := retro.NewOffscreenSurface(dev.Device, dev.Queue, cfg.SurfaceFormat, cfg.WindowWidth, cfg.WindowHeight)
	if err != nil {
		return err
	}
	defer surface.Destroy()

	events := &script{frames: sc.Frames}
	d := &retro.Driver{
		Pipeline: p,
		Events:   events,
		Surface:  surface,
		Update: func(p *retro.Pipeline) error {
			f, _ := events.current()
			writeText(p, sc.Text, f.Text)
			return nil
		},
	}

	for {
		if err := d.Step(); err != nil {
			if errors.Is(err, retro.ErrQuit) {
				break
			}
			return err
		}
		n := int(d.Frames()) - 1
		if err := capture(p, surface, ref, *outDir, n); err != nil {
			return err
		}
	}
	retro.Logger().Info("retroshot finished", "frames", d.Frames(), "out", *outDir)
	return nil
}

// writeText places each line on its own row from the top-left cell.
func writeText(p *retro.Pipeline, groups ...[]string) {
	g := p.Grid()
	row := 0
	for _, lines := range groups {
		for _, line := range lines {
			g.WriteString(0, row, line)
			row++
		}
	}
}

func capture(p *retro.Pipeline, surface *retro.OffscreenSurface, ref *reference, dir string, n int) error {
	screen, err := p.CaptureScreen()
	if err != nil {
		return fmt.Errorf("capture screen: %w", err)
	}
	if err := savePNG(filepath.Join(dir, fmt.Sprintf("screen-%02d.png", n)), screen); err != nil {
		return err
	}
	frame, err := surface.Capture()
	if err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}
	if err := savePNG(filepath.Join(dir, fmt.Sprintf("frame-%02d.png", n)), frame); err != nil {
		return err
	}
	if ref == nil {
		return nil
	}

	sw, sh := p.ScreenSize()
	want := ref.screen(p.Grid(), sw, sh)
	if bad := mismatches(screen, want, 0); bad > 0 {
		return fmt.Errorf("frame %d: %w: %d of %d pixels", n, errScreenMismatch, bad, sw*sh)
	}
	ww, wh := p.WindowSize()
	bad := mismatches(frame, ref.frame(want, ww, wh), frameTolerance)
	retro.Logger().Info("reference check", "frame", n, "window_mismatches", bad)
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
