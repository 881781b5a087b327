package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Stages is a compiled vertex and fragment shader pair. Code is handed to
// the HAL as 32-bit words (SPIR-V for Vulkan, the DXIL container for DX12).
type Stages struct {
	Label         string
	Vertex        []uint32
	Fragment      []uint32
	VertexEntry   string
	FragmentEntry string
}

func (s Stages) entries() (string, string) {
	vs, fs := s.VertexEntry, s.FragmentEntry
	if vs == "" {
		vs = "main"
	}
	if fs == "" {
		fs = "main"
	}
	return vs, fs
}

// Layout is the resource layout every pipeline shares: one uniform buffer
// at group 0 binding 0 holding the transform. It outlives pipeline swaps.
type Layout struct {
	uniform hal.BindGroupLayout
	pipe    hal.PipelineLayout
}

// NewLayout creates the bind group and pipeline layouts.
func NewLayout(device hal.Device) (*Layout, error) {
	uniform, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "transform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create transform layout: %w", err)
	}
	pipe, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "triangle_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{uniform},
	})
	if err != nil {
		device.DestroyBindGroupLayout(uniform)
		return nil, fmt.Errorf("gpu: create pipeline layout: %w", err)
	}
	return &Layout{uniform: uniform, pipe: pipe}, nil
}

// BindGroupLayout returns the transform bind group layout.
func (l *Layout) BindGroupLayout() hal.BindGroupLayout { return l.uniform }

// Destroy releases both layouts in reverse creation order.
func (l *Layout) Destroy(device hal.Device) {
	if l == nil {
		return
	}
	if l.pipe != nil {
		device.DestroyPipelineLayout(l.pipe)
		l.pipe = nil
	}
	if l.uniform != nil {
		device.DestroyBindGroupLayout(l.uniform)
		l.uniform = nil
	}
}

// Pipeline is a compiled render pipeline and the shader modules it was
// built from.
type Pipeline struct {
	label    string
	vs, fs   hal.ShaderModule
	pipeline hal.RenderPipeline
}

// Label returns the label of the stages the pipeline was built from.
func (p *Pipeline) Label() string { return p.label }

// BuildPipeline creates shader modules and a render pipeline targeting
// format. On failure everything created so far is destroyed and nothing
// is returned.
func BuildPipeline(device hal.Device, layout *Layout, format gputypes.TextureFormat, stages Stages) (*Pipeline, error) {
	if len(stages.Vertex) == 0 || len(stages.Fragment) == 0 {
		return nil, fmt.Errorf("gpu: pipeline %q: empty shader stage", stages.Label)
	}
	p := &Pipeline{label: stages.Label}
	vsEntry, fsEntry := stages.entries()

	var err error
	p.vs, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  stages.Label + "_vs",
		Source: hal.ShaderSource{SPIRV: stages.Vertex},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create vertex module: %w", err)
	}
	p.fs, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  stages.Label + "_fs",
		Source: hal.ShaderSource{SPIRV: stages.Fragment},
	})
	if err != nil {
		p.Destroy(device)
		return nil, fmt.Errorf("gpu: create fragment module: %w", err)
	}

	p.pipeline, err = device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  stages.Label + "_pipeline",
		Layout: layout.pipe,
		Vertex: hal.VertexState{
			Module:     p.vs,
			EntryPoint: vsEntry,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.fs,
			EntryPoint: fsEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Destroy(device)
		return nil, fmt.Errorf("gpu: create render pipeline: %w", err)
	}
	return p, nil
}

// Destroy releases the pipeline and its shader modules. Safe to call more
// than once.
func (p *Pipeline) Destroy(device hal.Device) {
	if p == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.fs != nil {
		device.DestroyShaderModule(p.fs)
		p.fs = nil
	}
	if p.vs != nil {
		device.DestroyShaderModule(p.vs)
		p.vs = nil
	}
}
