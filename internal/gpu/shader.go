// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/retro/internal/filter"
	"github.com/gogpu/retro/textmode"
)

// Embedded WGSL sources. Texture bindings are template actions resolved
// against the texture unit registry.
//
//go:embed shaders/retro/*.wgsl
var shaderFS embed.FS

var shaderTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"vec4": wgslVec4,
}).ParseFS(shaderFS, "shaders/retro/*.wgsl"))

// Entry points shared by every program.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// shaderParams feeds the WGSL templates.
type shaderParams struct {
	FontUnit      TextureUnit
	MapUnit       TextureUnit
	ScreenUnit    TextureUnit
	GlyphSize     int
	MinDerivative string
	Background    textmode.RGBA
	Foreground    textmode.RGBA
}

func newShaderParams(units *TextureUnitRegistry) shaderParams {
	p := shaderParams{
		GlyphSize:     textmode.GlyphSize,
		MinDerivative: wgslFloat(filter.MinDerivative),
		Background:    textmode.Background,
		Foreground:    textmode.Foreground,
	}
	p.FontUnit, _ = units.Lookup(UnitFont)
	p.MapUnit, _ = units.Lookup(UnitMap)
	p.ScreenUnit, _ = units.Lookup(UnitScreen)
	return p
}

// renderShader expands the named WGSL template.
func renderShader(name string, params shaderParams) (string, error) {
	var buf bytes.Buffer
	if err := shaderTemplates.ExecuteTemplate(&buf, name, params); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func wgslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func wgslVec4(c textmode.RGBA) string {
	return fmt.Sprintf("vec4<f32>(%s, %s, %s, %s)",
		wgslFloat(c.R), wgslFloat(c.G), wgslFloat(c.B), wgslFloat(c.A))
}

// ProgramSource is the WGSL for one vertex/fragment program.
type ProgramSource struct {
	Label    string
	Vertex   string
	Fragment string
}

// Program is a linked pair of shader modules.
type Program struct {
	Label    string
	Vertex   hal.ShaderModule
	Fragment hal.ShaderModule
}

// CompileProgram validates both stages with naga and creates their shader
// modules. On failure the diagnostic and the offending source are logged and
// a *ShaderError is returned; no modules are leaked.
func CompileProgram(device hal.Device, src ProgramSource) (*Program, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	vs, err := compileStage(device, src.Label, StageVertex, src.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := compileStage(device, src.Label, StageFragment, src.Fragment)
	if err != nil {
		device.DestroyShaderModule(vs)
		return nil, err
	}
	slogger().Debug("program compiled", "program", src.Label)
	return &Program{Label: src.Label, Vertex: vs, Fragment: fs}, nil
}

func compileStage(device hal.Device, program string, stage Stage, source string) (hal.ShaderModule, error) {
	fail := func(err error) error {
		slogger().Error("shader compilation failed",
			"program", program, "stage", string(stage), "err", err, "source", source)
		return &ShaderError{Program: program, Stage: stage, Source: source, Err: err}
	}

	if strings.TrimSpace(source) == "" {
		return nil, fail(fmt.Errorf("empty source"))
	}
	if _, err := naga.Compile(source); err != nil {
		return nil, fail(err)
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  fmt.Sprintf("%s_%s", program, stage),
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fail(err)
	}
	return module, nil
}

// Destroy releases both shader modules.
func (p *Program) Destroy(device hal.Device) {
	if p == nil || device == nil {
		return
	}
	if p.Fragment != nil {
		device.DestroyShaderModule(p.Fragment)
		p.Fragment = nil
	}
	if p.Vertex != nil {
		device.DestroyShaderModule(p.Vertex)
		p.Vertex = nil
	}
}

// compositorSource returns the text-mode program.
func compositorSource(params shaderParams) (ProgramSource, error) {
	return programSource("textmode", "textmode.wgsl", params)
}

// presenterSource returns the presentation program.
func presenterSource(params shaderParams) (ProgramSource, error) {
	return programSource("present", "present.wgsl", params)
}

func programSource(label, fragment string, params shaderParams) (ProgramSource, error) {
	vs, err := renderShader("quad.wgsl", params)
	if err != nil {
		return ProgramSource{}, err
	}
	fs, err := renderShader(fragment, params)
	if err != nil {
		return ProgramSource{}, err
	}
	return ProgramSource{Label: label, Vertex: vs, Fragment: fs}, nil
}
