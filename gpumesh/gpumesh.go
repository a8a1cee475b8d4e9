// Package gpumesh packs tessellation output into GPU-uploadable
// buffers: tightly packed float32 vertex data plus the matching
// gputypes vertex buffer layout descriptors.
package gpumesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/tess"
)

// FillVertexGPU is the packed fill vertex layout: position and
// outward normal, both float32x2.
type FillVertexGPU struct {
	Position f32.Vec2
	Normal   f32.Vec2
}

// StrokeVertexGPU is the packed stroke vertex layout: position,
// normal, advancement and side (0 = left, 1 = right).
type StrokeVertexGPU struct {
	Position    f32.Vec2
	Normal      f32.Vec2
	Advancement float32
	Side        float32
}

const (
	fillVertexStride   = 16
	strokeVertexStride = 24
)

// NewFillVertexGPU converts a tessellator fill vertex to the packed
// layout. Use it as the vertex constructor of a BuffersBuilder.
func NewFillVertexGPU(v tess.FillVertex) FillVertexGPU {
	return FillVertexGPU{
		Position: f32.Vec2{float32(v.Position.X), float32(v.Position.Y)},
		Normal:   f32.Vec2{float32(v.Normal.X), float32(v.Normal.Y)},
	}
}

// NewStrokeVertexGPU converts a tessellator stroke vertex to the
// packed layout.
func NewStrokeVertexGPU(v tess.StrokeVertex) StrokeVertexGPU {
	side := float32(0)
	if v.Side == tess.SideRight {
		side = 1
	}
	return StrokeVertexGPU{
		Position:    f32.Vec2{float32(v.Position.X), float32(v.Position.Y)},
		Normal:      f32.Vec2{float32(v.Normal.X), float32(v.Normal.Y)},
		Advancement: float32(v.Advancement),
		Side:        side,
	}
}

// FillVertexLayout returns the vertex buffer layout for FillVertexGPU:
// float32x2 position at location 0, float32x2 normal at location 1.
func FillVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: fillVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}

// StrokeVertexLayout returns the vertex buffer layout for
// StrokeVertexGPU: position, normal, advancement, side.
func StrokeVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: strokeVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32, Offset: 16, ShaderLocation: 2},
			{Format: gputypes.VertexFormatFloat32, Offset: 20, ShaderLocation: 3},
		},
	}
}

// Mesh is a GPU-ready triangle mesh: raw little-endian vertex bytes,
// uint32 indices, and the pipeline metadata the vertex data assumes.
type Mesh struct {
	VertexData []byte
	Indices    []uint32
	Layout     gputypes.VertexBufferLayout
	Topology   gputypes.PrimitiveTopology
	FrontFace  gputypes.FrontFace
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int {
	if m.Layout.ArrayStride == 0 {
		return 0
	}
	return len(m.VertexData) / int(m.Layout.ArrayStride)
}

func putF32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

// PackFill serializes fill vertex buffers into a Mesh.
func PackFill(buffers *tess.VertexBuffers[FillVertexGPU]) Mesh {
	data := make([]byte, len(buffers.Vertices)*fillVertexStride)
	for i, v := range buffers.Vertices {
		o := i * fillVertexStride
		putF32(data[o:], v.Position[0])
		putF32(data[o+4:], v.Position[1])
		putF32(data[o+8:], v.Normal[0])
		putF32(data[o+12:], v.Normal[1])
	}
	return Mesh{
		VertexData: data,
		Indices:    append([]uint32(nil), buffers.Indices...),
		Layout:     FillVertexLayout(),
		Topology:   gputypes.PrimitiveTopologyTriangleList,
		FrontFace:  gputypes.FrontFaceCCW,
	}
}

// PackStroke serializes stroke vertex buffers into a Mesh.
func PackStroke(buffers *tess.VertexBuffers[StrokeVertexGPU]) Mesh {
	data := make([]byte, len(buffers.Vertices)*strokeVertexStride)
	for i, v := range buffers.Vertices {
		o := i * strokeVertexStride
		putF32(data[o:], v.Position[0])
		putF32(data[o+4:], v.Position[1])
		putF32(data[o+8:], v.Normal[0])
		putF32(data[o+12:], v.Normal[1])
		putF32(data[o+16:], v.Advancement)
		putF32(data[o+20:], v.Side)
	}
	return Mesh{
		VertexData: data,
		Indices:    append([]uint32(nil), buffers.Indices...),
		Layout:     StrokeVertexLayout(),
		Topology:   gputypes.PrimitiveTopologyTriangleList,
		FrontFace:  gputypes.FrontFaceCCW,
	}
}
