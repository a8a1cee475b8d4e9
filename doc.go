// Package tess turns vector paths into triangle meshes.
//
// # Overview
//
// tess is a Pure Go path tessellation library for the GoGPU ecosystem.
// It converts resolution-independent path descriptions (lines,
// quadratic and cubic Bezier curves, elliptical arcs) into streams of
// non-overlapping triangles suitable for GPU rasterization.
//
// # Quick Start
//
//	import "github.com/gogpu/tess"
//
//	path := tess.BuildPath().
//		MoveTo(0, 0).
//		LineTo(100, 0).
//		LineTo(100, 100).
//		LineTo(0, 100).
//		Close().
//		Path()
//
//	buffers := tess.NewVertexBuffers[tess.FillVertex]()
//	t := tess.NewFillTessellator()
//	count, err := t.Tessellate(path, tess.DefaultFillOptions(), tess.NewSimpleFillBuilder(buffers))
//
// # Architecture
//
// The library is organized into:
//   - Geometry: Point, Vec2, Angle, Line, Rect, QuadBez, CubicBez, Arc
//   - Flattening: adaptive subdivision of curves into polylines
//   - Tessellators: FillTessellator (sweep line), StrokeTessellator (edge walker)
//   - Output: GeometryBuilder interfaces and VertexBuffers adapters
//   - gpumesh: packed float32 layouts and gputypes vertex descriptors
//
// # Fill rules
//
// Fills support the even-odd and non-zero winding rules. Input paths
// may self-intersect and contain holes; sub-paths are implicitly
// closed.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Determinism
//
// For a given input path and options the emitted triangle stream is
// identical across runs. Tessellator instances reuse their scratch
// buffers across calls; a single instance must not be shared between
// goroutines.
package tess
