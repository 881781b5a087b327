package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// vertexStride is the byte stride of one triangle vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
const vertexStride = 20

// TriangleVertices is the hardcoded drawable: position then color.
var TriangleVertices = [3][5]float32{
	{0.0, 0.5, 1, 0, 0},
	{0.5, -0.5, 0, 1, 0},
	{-0.5, -0.5, 0, 0, 1},
}

// Mesh is a GPU vertex buffer with its vertex count.
type Mesh struct {
	buf   hal.Buffer
	count uint32
}

// NewTriangleMesh uploads TriangleVertices to a new vertex buffer.
func NewTriangleMesh(device hal.Device, queue hal.Queue) (*Mesh, error) {
	data := make([]byte, 0, len(TriangleVertices)*vertexStride)
	for _, v := range TriangleVertices {
		var b [vertexStride]byte
		putFloats(b[:], v[:])
		data = append(data, b[:]...)
	}
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "triangle_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("gpu: upload vertices: %w", err)
	}
	return &Mesh{buf: buf, count: uint32(len(TriangleVertices))}, nil
}

// Record binds the vertex buffer and draws the mesh once.
func (m *Mesh) Record(rp hal.RenderPassEncoder) {
	rp.SetVertexBuffer(0, m.buf, 0)
	rp.Draw(m.count, 1, 0, 0)
}

// Destroy releases the vertex buffer.
func (m *Mesh) Destroy(device hal.Device) {
	if m != nil && m.buf != nil {
		device.DestroyBuffer(m.buf)
		m.buf = nil
	}
}

func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}
