// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/retro"
)

// size is a width and height pair as written in scene files.
type size struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

func (s size) set() bool { return s.Width != 0 || s.Height != 0 }

// frameScript describes the events delivered before one frame.
type frameScript struct {
	Window size     `toml:"window" yaml:"window"`
	Screen size     `toml:"screen" yaml:"screen"`
	Text   []string `toml:"text" yaml:"text"`
}

// scene is the file format accepted by -config.
type scene struct {
	Window     size          `toml:"window" yaml:"window"`
	Screen     size          `toml:"screen" yaml:"screen"`
	Margin     float32       `toml:"margin" yaml:"margin"`
	Threshold  int           `toml:"margin_threshold" yaml:"margin_threshold"`
	Seed       uint64        `toml:"seed" yaml:"seed"`
	RandomFill *bool         `toml:"random_fill" yaml:"random_fill"`
	Text       []string      `toml:"text" yaml:"text"`
	Frames     []frameScript `toml:"frames" yaml:"frames"`
}

// loadScene reads a TOML or YAML scene file, chosen by extension.
func loadScene(path string) (*scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	return parseScene(filepath.Ext(path), data)
}

func parseScene(ext string, data []byte) (*scene, error) {
	var s scene
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing TOML scene: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing YAML scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scene format %q", ext)
	}
	return &s, nil
}

// apply overlays the scene's settings on c. Zero fields keep c's values.
func (s *scene) apply(c *retro.Config) {
	if s.Window.set() {
		c.WindowWidth, c.WindowHeight = s.Window.Width, s.Window.Height
	}
	if s.Screen.set() {
		c.ScreenWidth, c.ScreenHeight = s.Screen.Width, s.Screen.Height
	}
	if s.Margin != 0 {
		c.Margin = s.Margin
	}
	if s.Threshold != 0 {
		c.MarginThreshold = s.Threshold
	}
	if s.Seed != 0 {
		c.Seed = s.Seed
	}
	if s.RandomFill != nil {
		c.RandomFill = *s.RandomFill
	}
}

// events converts one frame script into pipeline events.
func (f frameScript) events() []retro.Event {
	var evs []retro.Event
	if f.Window.set() {
		evs = append(evs, retro.ResizeEvent{Width: f.Window.Width, Height: f.Window.Height})
	}
	if f.Screen.set() {
		evs = append(evs, retro.ScreenModeEvent{Width: f.Screen.Width, Height: f.Screen.Height})
	}
	return evs
}

// script feeds the scene's frames to a retro.Driver, then asks it to quit.
type script struct {
	frames []frameScript
	next   int
}

func (s *script) PollEvents() []retro.Event {
	if s.next >= len(s.frames) {
		s.next = len(s.frames) + 1
		return []retro.Event{retro.QuitEvent{}}
	}
	evs := s.frames[s.next].events()
	s.next++
	return evs
}

// current returns the frame whose events were delivered last.
func (s *script) current() (frameScript, bool) {
	if s.next == 0 || s.next > len(s.frames) {
		return frameScript{}, false
	}
	return s.frames[s.next-1], true
}
