package tess

import (
	"errors"
	"math"
	"testing"
)

// tessFill runs the fill tessellator and validates the universal mesh
// invariants: index ranges, triangle degeneracy, and winding
// consistency.
func tessFill(t *testing.T, path *Path, opts FillOptions) (*VertexBuffers[FillVertex], Count) {
	t.Helper()
	buf := NewVertexBuffers[FillVertex]()
	ft := NewFillTessellator()
	count, err := ft.Tessellate(path, opts, NewSimpleFillBuilder(buf))
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	checkFillMesh(t, buf, count)
	return buf, count
}

func checkFillMesh(t *testing.T, buf *VertexBuffers[FillVertex], count Count) {
	t.Helper()
	if len(buf.Vertices) != int(count.Vertices) {
		t.Fatalf("vertex count %d != buffer length %d", count.Vertices, len(buf.Vertices))
	}
	if len(buf.Indices) != int(count.Indices) {
		t.Fatalf("index count %d != buffer length %d", count.Indices, len(buf.Indices))
	}
	if len(buf.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(buf.Indices))
	}
	for i := 0; i < len(buf.Indices); i += 3 {
		a, b, c := buf.Indices[i], buf.Indices[i+1], buf.Indices[i+2]
		for _, idx := range []uint32{a, b, c} {
			if idx >= count.Vertices {
				t.Fatalf("triangle %d: index %d out of range (%d vertices)", i/3, idx, count.Vertices)
			}
		}
		if a == b || b == c || a == c {
			t.Fatalf("triangle %d repeats an index: %d %d %d", i/3, a, b, c)
		}
		// Orientation-normalized output: every triangle has positive
		// signed area.
		area := signedTriArea(buf, i)
		if area <= 0 {
			t.Fatalf("triangle %d has non-positive signed area %v", i/3, area)
		}
	}
}

func signedTriArea(buf *VertexBuffers[FillVertex], i int) float64 {
	a := buf.Vertices[buf.Indices[i]].Position
	b := buf.Vertices[buf.Indices[i+1]].Position
	c := buf.Vertices[buf.Indices[i+2]].Position
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

func meshArea(buf *VertexBuffers[FillVertex]) float64 {
	total := 0.0
	for i := 0; i < len(buf.Indices); i += 3 {
		total += signedTriArea(buf, i)
	}
	return total
}

// covered reports whether any emitted triangle contains the point.
func covered(buf *VertexBuffers[FillVertex], p Point) bool {
	for i := 0; i < len(buf.Indices); i += 3 {
		a := buf.Vertices[buf.Indices[i]].Position
		b := buf.Vertices[buf.Indices[i+1]].Position
		c := buf.Vertices[buf.Indices[i+2]].Position
		d1 := b.Sub(a).Cross(p.Sub(a))
		d2 := c.Sub(b).Cross(p.Sub(b))
		d3 := a.Sub(c).Cross(p.Sub(c))
		if d1 >= 0 && d2 >= 0 && d3 >= 0 || d1 <= 0 && d2 <= 0 && d3 <= 0 {
			return true
		}
	}
	return false
}

func triangleCount(count Count) int {
	return int(count.Indices) / 3
}

// -------------------------------------------------------------------
// Concrete scenarios
// -------------------------------------------------------------------

func TestFill_UnitSquare(t *testing.T) {
	path := BuildPath().Rect(0, 0, 1, 1).Path()
	buf, count := tessFill(t, path, DefaultFillOptions())

	if got := triangleCount(count); got != 2 {
		t.Errorf("triangles = %d, want 2", got)
	}
	if count.Vertices != 4 {
		t.Errorf("vertices = %d, want 4", count.Vertices)
	}
	if area := meshArea(buf); math.Abs(area-1) > 1e-9 {
		t.Errorf("area = %v, want 1", area)
	}
}

func TestFill_SquareWithHole(t *testing.T) {
	path := BuildPath().
		MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).LineTo(0, 10).Close().
		MoveTo(3, 3).LineTo(3, 7).LineTo(7, 7).LineTo(7, 3).Close().
		Path()
	buf, _ := tessFill(t, path, DefaultFillOptions())

	if area := meshArea(buf); math.Abs(area-84) > 1e-9 {
		t.Errorf("area = %v, want 84", area)
	}
	if covered(buf, Pt(5, 5)) {
		t.Error("hole interior (5,5) should not be covered")
	}
	for _, p := range []Point{Pt(0.5, 5), Pt(5, 1), Pt(5, 9), Pt(9.5, 5)} {
		if !covered(buf, p) {
			t.Errorf("annulus point %v should be covered", p)
		}
	}
}

func TestFill_Bowtie(t *testing.T) {
	path := BuildPath().
		MoveTo(0, 0).LineTo(2, 2).LineTo(2, 0).LineTo(0, 2).Close().
		Path()

	t.Run("even odd", func(t *testing.T) {
		buf, count := tessFill(t, path, DefaultFillOptions())
		if got := triangleCount(count); got != 2 {
			t.Errorf("triangles = %d, want 2", got)
		}
		if area := meshArea(buf); math.Abs(area-2) > 1e-9 {
			t.Errorf("area = %v, want 2", area)
		}
	})

	t.Run("non zero", func(t *testing.T) {
		buf, _ := tessFill(t, path, DefaultFillOptions().WithRule(FillRuleNonZero))
		// Both lobes have winding magnitude 1.
		if area := meshArea(buf); math.Abs(area-2) > 1e-9 {
			t.Errorf("area = %v, want 2", area)
		}
	})
}

func TestFill_Circle64(t *testing.T) {
	path := BuildPath().Polygon(0, 0, 5, 64).Path()
	buf, count := tessFill(t, path, DefaultFillOptions())

	if got := triangleCount(count); got != 62 {
		t.Errorf("triangles = %d, want 62", got)
	}
	want := 0.5 * 64 * 25 * math.Sin(2*math.Pi/64) // inscribed polygon area
	if area := meshArea(buf); math.Abs(area-want) > 1e-6 {
		t.Errorf("area = %v, want %v", area, want)
	}
	if area := meshArea(buf); math.Abs(area-math.Pi*25)/(math.Pi*25) > 0.005 {
		t.Errorf("area = %v, deviates more than 0.5%% from pi*25", area)
	}
}

func TestFill_SimplePolygonCounts(t *testing.T) {
	// A simple closed polygon with v vertices triangulates into
	// exactly v-2 triangles.
	tests := []struct {
		name     string
		path     *Path
		vertices int
		area     float64
	}{
		{
			name:     "triangle",
			path:     BuildPath().MoveTo(0, 0).LineTo(4, 1).LineTo(1, 3).Close().Path(),
			vertices: 3,
			area:     5.5,
		},
		{
			name:     "pentagon",
			path:     BuildPath().Polygon(0, 0, 10, 5).Path(),
			vertices: 5,
			area:     0.5 * 5 * 100 * math.Sin(2*math.Pi/5),
		},
		{
			name: "split vertex",
			// Square with a v-notch cut from the bottom edge.
			path:     BuildPath().MoveTo(0, 0).LineTo(4, 0).LineTo(4, 4).LineTo(2, 2).LineTo(0, 4).Close().Path(),
			vertices: 5,
			area:     12,
		},
		{
			name: "merge vertex",
			// Square with a v-notch cut from the top edge.
			path:     BuildPath().MoveTo(0, 0).LineTo(2, 2).LineTo(4, 0).LineTo(4, 4).LineTo(0, 4).Close().Path(),
			vertices: 5,
			area:     12,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, count := tessFill(t, tt.path, DefaultFillOptions())
			if got := triangleCount(count); got != tt.vertices-2 {
				t.Errorf("triangles = %d, want %d", got, tt.vertices-2)
			}
			if area := meshArea(buf); math.Abs(area-tt.area) > 1e-6 {
				t.Errorf("area = %v, want %v", area, tt.area)
			}
		})
	}
}

func TestFill_NonZeroNestedSameOrientation(t *testing.T) {
	// Under the non-zero rule, a nested contour with the same
	// orientation does not punch a hole: the winding goes 1 -> 2.
	path := BuildPath().
		MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).LineTo(0, 10).Close().
		MoveTo(3, 3).LineTo(7, 3).LineTo(7, 7).LineTo(3, 7).Close().
		Path()
	buf, _ := tessFill(t, path, DefaultFillOptions().WithRule(FillRuleNonZero))
	if area := meshArea(buf); math.Abs(area-100) > 1e-9 {
		t.Errorf("area = %v, want 100 (no hole)", area)
	}
	if !covered(buf, Pt(5, 5)) {
		t.Error("center should be covered under non-zero")
	}
}

func TestFill_TwoDisjointSquares(t *testing.T) {
	path := BuildPath().
		Rect(0, 0, 2, 2).
		Rect(10, 10, 3, 3).
		Path()
	buf, count := tessFill(t, path, DefaultFillOptions())
	if got := triangleCount(count); got != 4 {
		t.Errorf("triangles = %d, want 4", got)
	}
	if area := meshArea(buf); math.Abs(area-13) > 1e-9 {
		t.Errorf("area = %v, want 13", area)
	}
}

func TestFill_OpenPathImplicitClosure(t *testing.T) {
	// An open quadratic sub-path is closed implicitly; the region
	// between the curve and its chord has area 2/3 of the control
	// triangle.
	path := BuildPath().MoveTo(0, 0).QuadTo(1, 0, 1, 1).Path()
	buf, _ := tessFill(t, path, DefaultFillOptions().WithTolerance(0.002))
	want := 1.0 / 3.0
	if area := meshArea(buf); math.Abs(area-want) > 0.01 {
		t.Errorf("area = %v, want about %v", area, want)
	}
}

func TestFill_CubicCurvedPath(t *testing.T) {
	// A closed wave-like region bounded by a cubic and its chord.
	path := BuildPath().
		MoveTo(0, 0).
		CubicTo(2, -4, 6, 4, 8, 0).
		Close().
		Path()
	buf, count := tessFill(t, path, DefaultFillOptions().WithTolerance(0.01))
	if count.Indices == 0 {
		t.Fatal("expected triangles for curved region")
	}
	// The two lobes above and below the chord have equal area by
	// symmetry; both are filled under even-odd.
	area := meshArea(buf)
	if area <= 0 {
		t.Errorf("area = %v, want positive", area)
	}
}

// -------------------------------------------------------------------
// Degenerate and error inputs
// -------------------------------------------------------------------

func TestFill_EmptyPath(t *testing.T) {
	buf := NewVertexBuffers[FillVertex]()
	ft := NewFillTessellator()
	count, err := ft.Tessellate(NewPath(), DefaultFillOptions(), NewSimpleFillBuilder(buf))
	if err != nil {
		t.Fatalf("empty path should not fail: %v", err)
	}
	if count != (Count{}) {
		t.Errorf("count = %+v, want zero", count)
	}
}

func TestFill_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		path *Path
	}{
		{"single point", BuildPath().MoveTo(1, 1).Close().Path()},
		{"single segment", BuildPath().MoveTo(0, 0).LineTo(5, 5).Close().Path()},
		{"collinear contour", BuildPath().MoveTo(0, 0).LineTo(2, 2).LineTo(4, 4).LineTo(1, 1).Close().Path()},
		{"repeated points", BuildPath().MoveTo(0, 0).LineTo(0, 0).LineTo(0, 0).Close().Path()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewVertexBuffers[FillVertex]()
			ft := NewFillTessellator()
			count, err := ft.Tessellate(tt.path, DefaultFillOptions(), NewSimpleFillBuilder(buf))
			if err != nil {
				t.Fatalf("degenerate input should not fail: %v", err)
			}
			if got := triangleCount(count); got != 0 {
				t.Errorf("triangles = %d, want 0", got)
			}
		})
	}
}

func TestFill_InvalidTolerance(t *testing.T) {
	path := BuildPath().Rect(0, 0, 1, 1).Path()
	ft := NewFillTessellator()
	_, err := ft.Tessellate(path, FillOptions{Tolerance: 0}, NewSimpleFillBuilder(NewVertexBuffers[FillVertex]()))
	if !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("err = %v, want ErrInvalidTolerance", err)
	}
}

func TestFill_NonFiniteInput(t *testing.T) {
	path := NewPath()
	path.MoveTo(0, 0)
	path.LineTo(math.NaN(), 1)
	path.Close()
	ft := NewFillTessellator()
	_, err := ft.Tessellate(path, DefaultFillOptions(), NewSimpleFillBuilder(NewVertexBuffers[FillVertex]()))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestFill_TooManyVertices(t *testing.T) {
	buf := NewVertexBuffers[FillVertex]()
	builder := NewSimpleFillBuilder(buf)
	builder.MaxVertices = 2

	// Preexisting content must survive the abort.
	builder.BeginGeometry()
	if _, err := builder.AddFillVertex(FillVertex{Position: Pt(9, 9)}); err != nil {
		t.Fatal(err)
	}
	builder.EndGeometry()

	ft := NewFillTessellator()
	path := BuildPath().Rect(0, 0, 1, 1).Path()
	_, err := ft.Tessellate(path, DefaultFillOptions(), builder)
	if !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("err = %v, want ErrTooManyVertices", err)
	}
	if len(buf.Vertices) != 1 || len(buf.Indices) != 0 {
		t.Errorf("abort did not restore buffers: %d vertices, %d indices", len(buf.Vertices), len(buf.Indices))
	}
}

// -------------------------------------------------------------------
// Determinism and reuse
// -------------------------------------------------------------------

func TestFill_DeterministicAcrossReuse(t *testing.T) {
	path := BuildPath().
		MoveTo(0, 0).LineTo(10, 3).LineTo(4, 8).LineTo(7, 12).LineTo(-2, 9).Close().
		Path()

	ft := NewFillTessellator()
	runOnce := func() *VertexBuffers[FillVertex] {
		buf := NewVertexBuffers[FillVertex]()
		if _, err := ft.Tessellate(path, DefaultFillOptions(), NewSimpleFillBuilder(buf)); err != nil {
			t.Fatal(err)
		}
		return buf
	}

	a := runOnce()
	b := runOnce()
	if len(a.Vertices) != len(b.Vertices) || len(a.Indices) != len(b.Indices) {
		t.Fatalf("reused tessellator produced different sizes")
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("index %d differs between runs: %d vs %d", i, a.Indices[i], b.Indices[i])
		}
	}
	for i := range a.Vertices {
		if a.Vertices[i].Position != b.Vertices[i].Position {
			t.Fatalf("vertex %d differs between runs", i)
		}
	}
}

func TestFill_OutwardNormals(t *testing.T) {
	path := BuildPath().Rect(0, 0, 1, 1).Path()
	buf, _ := tessFill(t, path, DefaultFillOptions())

	for _, v := range buf.Vertices {
		if v.Normal.IsZero() {
			t.Fatalf("vertex %v has no normal", v.Position)
		}
		// The outward normal at a square corner points away from the
		// center.
		out := v.Position.Sub(Pt(0.5, 0.5))
		if v.Normal.Dot(out) <= 0 {
			t.Errorf("normal %v at %v points inward", v.Normal, v.Position)
		}
	}
}

func TestFill_NoOutputBuilder(t *testing.T) {
	path := BuildPath().Rect(0, 0, 1, 1).Path()
	ft := NewFillTessellator()
	count, err := ft.Tessellate(path, DefaultFillOptions(), NewNoOutput())
	if err != nil {
		t.Fatal(err)
	}
	if count.Vertices != 4 || count.Indices != 6 {
		t.Errorf("count = %+v, want 4 vertices / 6 indices", count)
	}
}
