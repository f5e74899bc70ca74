// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/retro/internal/geometry"
	"github.com/gogpu/retro/textmode"
)

// screenUniformSize is the byte size of the Uniforms struct in quad.wgsl:
// screen_size (vec2<f32>) = 8 bytes + padding (vec2<f32>) = 8 bytes.
const screenUniformSize = 16

// quadPipelineDesc configures a quadPipeline.
type quadPipelineDesc struct {
	label  string
	source ProgramSource
	format gputypes.TextureFormat
	units  []TextureUnit
	quad   geometry.Quad

	// sampler, when set, is bound at group 0 binding 1.
	sampler hal.Sampler
}

// quadPipeline draws one textured quad strip with a screen-size uniform.
//
// Bind groups:
//
//	group 0: binding 0 uniforms (vertex+fragment), binding 1 optional sampler
//	group 1: one texture per registered unit, at binding = unit
//
// The texture group is rebuilt whenever a bound texture is reallocated.
type quadPipeline struct {
	device hal.Device
	queue  hal.Queue
	label  string

	program       *Program
	uniformLayout hal.BindGroupLayout
	textureLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	quadBuf      hal.Buffer
	uniformBuf   hal.Buffer
	uniformGroup hal.BindGroup
	textureGroup hal.BindGroup
}

func newQuadPipeline(device hal.Device, queue hal.Queue, desc quadPipelineDesc) (*quadPipeline, error) {
	p := &quadPipeline{device: device, queue: queue, label: desc.label}
	if err := p.create(desc); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

//nolint:funlen // linear resource creation
func (p *quadPipeline) create(desc quadPipelineDesc) error {
	program, err := CompileProgram(p.device, desc.source)
	if err != nil {
		return err
	}
	p.program = program

	uniformEntries := []gputypes.BindGroupLayoutEntry{{
		Binding:    0,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}}
	if desc.sampler != nil {
		uniformEntries = append(uniformEntries, gputypes.BindGroupLayoutEntry{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		})
	}
	p.uniformLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   p.label + "_uniform_layout",
		Entries: uniformEntries,
	})
	if err != nil {
		return fmt.Errorf("create %s uniform layout: %w", p.label, err)
	}

	textureEntries := make([]gputypes.BindGroupLayoutEntry, 0, len(desc.units))
	for _, u := range desc.units {
		textureEntries = append(textureEntries, textureLayoutEntry(u))
	}
	p.textureLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   p.label + "_texture_layout",
		Entries: textureEntries,
	})
	if err != nil {
		return fmt.Errorf("create %s texture layout: %w", p.label, err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            p.label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", p.label, err)
	}

	p.pipeline, err = p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  p.label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.program.Vertex,
			EntryPoint: vertexEntryPoint,
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.program.Fragment,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{{
				Format:    desc.format,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline: %w", p.label, err)
	}

	p.quadBuf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: p.label + "_quad",
		Size:  geometry.QuadSize,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create %s vertex buffer: %w", p.label, err)
	}
	if err := p.setQuad(desc.quad); err != nil {
		return err
	}

	p.uniformBuf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: p.label + "_uniforms",
		Size:  screenUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create %s uniform buffer: %w", p.label, err)
	}

	groupEntries := []gputypes.BindGroupEntry{{
		Binding:  0,
		Resource: gputypes.BufferBinding{Buffer: p.uniformBuf.NativeHandle(), Offset: 0, Size: screenUniformSize},
	}}
	if desc.sampler != nil {
		groupEntries = append(groupEntries, gputypes.BindGroupEntry{
			Binding:  1,
			Resource: gputypes.SamplerBinding{Sampler: desc.sampler.NativeHandle()},
		})
	}
	p.uniformGroup, err = p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + "_uniform_group",
		Layout:  p.uniformLayout,
		Entries: groupEntries,
	})
	if err != nil {
		return fmt.Errorf("create %s uniform bind group: %w", p.label, err)
	}
	return nil
}

// bindTextures replaces the texture bind group.
func (p *quadPipeline) bindTextures(entries []gputypes.BindGroupEntry) error {
	group, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + "_texture_group",
		Layout:  p.textureLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create %s texture bind group: %w", p.label, err)
	}
	if p.textureGroup != nil {
		p.device.DestroyBindGroup(p.textureGroup)
	}
	p.textureGroup = group
	return nil
}

// setScreenSize rewrites the screen_size uniform.
func (p *quadPipeline) setScreenSize(width, height int) error {
	if err := p.queue.WriteBuffer(p.uniformBuf, 0, screenUniformBytes(width, height)); err != nil {
		return fmt.Errorf("write %s uniforms: %w", p.label, err)
	}
	return nil
}

// setQuad rewrites the vertex buffer in place.
func (p *quadPipeline) setQuad(q geometry.Quad) error {
	if err := p.queue.WriteBuffer(p.quadBuf, 0, q.Bytes()); err != nil {
		return fmt.Errorf("write %s quad: %w", p.label, err)
	}
	return nil
}

// draw records a render pass that clears view and draws the quad with a
// width x height viewport.
func (p *quadPipeline) draw(encoder hal.CommandEncoder, view hal.TextureView, clear textmode.RGBA, width, height uint32) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: p.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: float64(clear.R), G: float64(clear.G), B: float64(clear.B), A: float64(clear.A)},
		}},
	})
	rp.SetViewport(0, 0, float32(width), float32(height), 0, 1)
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.uniformGroup, nil)
	rp.SetBindGroup(1, p.textureGroup, nil)
	rp.SetVertexBuffer(0, p.quadBuf, 0)
	rp.Draw(geometry.VertexCount, 1, 0, 0)
	rp.End()
}

// destroy releases all resources in reverse creation order. Safe on a
// partially created pipeline.
func (p *quadPipeline) destroy() {
	if p.device == nil {
		return
	}
	if p.textureGroup != nil {
		p.device.DestroyBindGroup(p.textureGroup)
		p.textureGroup = nil
	}
	if p.uniformGroup != nil {
		p.device.DestroyBindGroup(p.uniformGroup)
		p.uniformGroup = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.quadBuf != nil {
		p.device.DestroyBuffer(p.quadBuf)
		p.quadBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.textureLayout != nil {
		p.device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	p.program.Destroy(p.device)
	p.program = nil
}

// quadVertexLayout matches VertexInput in quad.wgsl:
//
//	location 0: position (vec2<f32>)
//	location 1: uv (vec2<f32>)
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: geometry.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

// screenUniformBytes serializes the Uniforms struct.
func screenUniformBytes(width, height int) []byte {
	buf := make([]byte, screenUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(height)))
	return buf
}
