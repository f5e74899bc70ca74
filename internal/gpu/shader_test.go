// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

func TestShaderSources_BindingsFollowUnits(t *testing.T) {
	units := testUnits(t)
	params := newShaderParams(units)

	comp, err := compositorSource(params)
	if err != nil {
		t.Fatalf("compositorSource() error = %v", err)
	}
	for _, want := range []string{
		"@group(1) @binding(1) var font_sampler",
		"@group(1) @binding(2) var map_sampler",
		"fn fs_main",
		"vec4<f32>(0.28, 0.23, 0.67, 1.0)",
		"vec4<f32>(0.53, 0.48, 0.87, 1.0)",
		"(code & 240u) >> 1u",
	} {
		if !strings.Contains(comp.Fragment, want) {
			t.Errorf("compositor fragment missing %q", want)
		}
	}
	if !strings.Contains(comp.Vertex, "fn vs_main") {
		t.Error("vertex source missing vs_main")
	}

	pres, err := presenterSource(params)
	if err != nil {
		t.Fatalf("presenterSource() error = %v", err)
	}
	for _, want := range []string{
		"@group(1) @binding(0) var screen_sampler",
		"@group(0) @binding(1) var linear_filter",
		"fwidth(pixel)",
		"round(pixel)",
		"0.000001",
	} {
		if !strings.Contains(pres.Fragment, want) {
			t.Errorf("presenter fragment missing %q", want)
		}
	}
	if strings.Contains(pres.Fragment, "{{") || strings.Contains(comp.Fragment, "{{") {
		t.Error("unexpanded template action in shader source")
	}
}

func TestShaderSources_Compile(t *testing.T) {
	params := newShaderParams(testUnits(t))
	for _, build := range []func(shaderParams) (ProgramSource, error){compositorSource, presenterSource} {
		src, err := build(params)
		if err != nil {
			t.Fatal(err)
		}
		for _, stage := range []struct {
			name, source string
		}{{"vertex", src.Vertex}, {"fragment", src.Fragment}} {
			spirv, err := naga.Compile(stage.source)
			if err != nil {
				skipIfNagaUnsupported(t, err)
				t.Fatalf("%s %s: naga.Compile failed: %v", src.Label, stage.name, err)
			}
			if len(spirv) < 4 {
				t.Fatalf("%s %s: SPIR-V too short", src.Label, stage.name)
			}
			magic := uint32(spirv[0]) | uint32(spirv[1])<<8 | uint32(spirv[2])<<16 | uint32(spirv[3])<<24
			if magic != 0x07230203 {
				t.Errorf("%s %s: bad SPIR-V magic %#x", src.Label, stage.name, magic)
			}
		}
	}
}

func TestCompileProgram_InvalidSource(t *testing.T) {
	device, _, cleanup := newNoopDevice(t)
	defer cleanup()

	_, err := CompileProgram(device, ProgramSource{
		Label:    "broken",
		Vertex:   "@vertex fn vs_main( -> {",
		Fragment: "",
	})
	if !errors.Is(err, ErrShaderCompile) {
		t.Fatalf("CompileProgram() error = %v, want ErrShaderCompile", err)
	}
	var se *ShaderError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not a *ShaderError", err)
	}
	if se.Stage != StageVertex || se.Program != "broken" {
		t.Errorf("ShaderError = %+v, want vertex stage of broken", se)
	}
	if !strings.Contains(se.Source, "vs_main") {
		t.Error("ShaderError does not carry the source")
	}
}

func TestCompileProgram_EmptyFragment(t *testing.T) {
	requirePrograms(t)
	device, _, cleanup := newNoopDevice(t)
	defer cleanup()

	src, err := presenterSource(newShaderParams(testUnits(t)))
	if err != nil {
		t.Fatal(err)
	}
	src.Fragment = "  "
	_, err = CompileProgram(device, src)
	var se *ShaderError
	if !errors.As(err, &se) || se.Stage != StageFragment {
		t.Fatalf("CompileProgram() error = %v, want fragment ShaderError", err)
	}
}

func TestCompileProgram_DeviceFailure(t *testing.T) {
	requirePrograms(t)
	device, _, cleanup := newNoopDevice(t)
	defer cleanup()

	src, err := compositorSource(newShaderParams(testUnits(t)))
	if err != nil {
		t.Fatal(err)
	}
	_, err = CompileProgram(&failingDevice{Device: device, failShaderModule: true}, src)
	if !errors.Is(err, errInjected) || !errors.Is(err, ErrShaderCompile) {
		t.Fatalf("CompileProgram() error = %v, want injected ShaderError", err)
	}
}

func TestCompileProgram_NilDevice(t *testing.T) {
	if _, err := CompileProgram(nil, ProgramSource{}); !errors.Is(err, ErrNilDevice) {
		t.Errorf("CompileProgram(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestWGSLFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{1, "1.0"},
		{0.28, "0.28"},
		{0.000001, "0.000001"},
		{0, "0.0"},
	}
	for _, tt := range tests {
		if got := wgslFloat(tt.in); got != tt.want {
			t.Errorf("wgslFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
