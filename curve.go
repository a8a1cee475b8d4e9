package tess

import "math"

// Curve types for 2D geometry operations.
// Based on kurbo patterns, adapted for Go idioms.

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
// Zero-length segments are representable; tessellators treat them as
// degenerate and drop them.
type Line struct {
	P0, P1 Point
}

// NewLine creates a new line segment.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// Midpoint returns the midpoint of the line segment.
func (l Line) Midpoint() Point {
	return l.Eval(0.5)
}

// Direction returns the (unnormalized) direction vector P1-P0.
func (l Line) Direction() Vec2 {
	return l.P1.Sub(l.P0)
}

// Reversed returns a copy of the line with endpoints swapped.
func (l Line) Reversed() Line {
	return Line{P0: l.P1, P1: l.P0}
}

// BoundingBox returns the axis-aligned bounding box of the line.
func (l Line) BoundingBox() Rect {
	return NewRect(l.P0, l.P1)
}

// Intersection returns the intersection point of the two segments and
// true when they properly cross. Collinear overlap and intersections
// at or beyond either segment's endpoints report false: touching
// configurations are resolved by event ordering instead.
func (l Line) Intersection(m Line) (Point, bool) {
	d1 := l.Direction()
	d2 := m.Direction()
	denom := d1.Cross(d2)
	if denom == 0 {
		return Point{}, false
	}
	w := m.P0.Sub(l.P0)
	t := w.Cross(d2) / denom
	u := w.Cross(d1) / denom
	const eps = 1e-12
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return Point{}, false
	}
	return l.Eval(t), true
}

// ClosestParam returns the parameter of the point on the line closest
// to p, clamped to [0, 1].
func (l Line) ClosestParam(p Point) float64 {
	d := l.Direction()
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return 0
	}
	t := p.Sub(l.P0).Dot(d) / lenSq
	return math.Max(0, math.Min(1, t))
}

// Project returns the point on the segment closest to p.
func (l Line) Project(p Point) Point {
	return l.Eval(l.ClosestParam(p))
}

// DistanceTo returns the distance from p to the segment.
func (l Line) DistanceTo(p Point) float64 {
	return p.Distance(l.Project(p))
}

// SignedDistance returns the perpendicular distance from p to the
// infinite line through the segment. Positive when p lies to the left
// of the direction P0->P1. Returns the plain distance to P0 for
// zero-length segments.
func (l Line) SignedDistance(p Point) float64 {
	d := l.Direction()
	length := d.Length()
	if length == 0 {
		return p.Distance(l.P0)
	}
	return d.Cross(p.Sub(l.P0)) / length
}

// SolveYForX returns the parameter t where the segment reaches the
// given x, assuming the segment is monotone in x.
func (l Line) SolveYForX(x float64) float64 {
	dx := l.P1.X - l.P0.X
	if dx == 0 {
		return 0
	}
	return math.Max(0, math.Min(1, (x-l.P0.X)/dx))
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points
// P0, P1, P2. P0 is the start point, P1 is the control point, P2 is
// the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// NewQuadBez creates a new quadratic Bezier curve.
func NewQuadBez(p0, p1, p2 Point) QuadBez {
	return QuadBez{P0: p0, P1: p1, P2: p2}
}

// Eval evaluates the curve at parameter t (0 to 1) using the Bernstein
// form: (1-t)^2*P0 + 2(1-t)t*P1 + t^2*P2.
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Deriv returns the derivative at parameter t. The derivative of a
// quadratic is a linear segment in vector space.
func (q QuadBez) Deriv(t float64) Vec2 {
	a := q.P1.Sub(q.P0).Mul(2 * (1 - t))
	b := q.P2.Sub(q.P1).Mul(2 * t)
	return a.Add(b)
}

// Subdivide splits the curve at t=0.5 into two halves.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	return q.Split(0.5)
}

// Split divides the curve at parameter t using de Casteljau's
// algorithm. The two halves share the split point.
func (q QuadBez) Split(t float64) (QuadBez, QuadBez) {
	a := q.P0.Lerp(q.P1, t)
	b := q.P1.Lerp(q.P2, t)
	m := a.Lerp(b, t)
	return QuadBez{P0: q.P0, P1: a, P2: m}, QuadBez{P0: m, P1: b, P2: q.P2}
}

// After returns the part of the curve from parameter t to 1.
func (q QuadBez) After(t float64) QuadBez {
	_, rest := q.Split(t)
	return rest
}

// ToCubic converts the quadratic to an exactly equivalent cubic.
func (q QuadBez) ToCubic() CubicBez {
	c1 := q.P0.Lerp(q.P1, 2.0/3.0)
	c2 := q.P2.Lerp(q.P1, 2.0/3.0)
	return CubicBez{P0: q.P0, P1: c1, P2: c2, P3: q.P2}
}

// BoundingBox returns the axis-aligned bounding box of the curve.
// The control polygon bounds the curve, so the box of the three
// points is a conservative box; extrema are solved for a tight one.
func (q QuadBez) BoundingBox() Rect {
	box := NewRect(q.P0, q.P2)
	for _, t := range q.extrema() {
		p := q.Eval(t)
		box = box.Union(NewRect(p, p))
	}
	return box
}

// extrema returns the parameters in (0,1) where dx/dt or dy/dt is zero.
func (q QuadBez) extrema() []float64 {
	var ts []float64
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	if denom := d0.X - d1.X; denom != 0 {
		if t := d0.X / denom; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	if denom := d0.Y - d1.Y; denom != 0 {
		if t := d0.Y / denom; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

// YMonotoneSplit returns the curve partitioned into segments that are
// each monotone in y.
func (q QuadBez) YMonotoneSplit() []QuadBez {
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	denom := d0.Y - d1.Y
	if denom == 0 {
		return []QuadBez{q}
	}
	t := d0.Y / denom
	if t <= 0 || t >= 1 {
		return []QuadBez{q}
	}
	first, second := q.Split(t)
	return []QuadBez{first, second}
}

// FlatteningStep returns the parameter advance that keeps the polyline
// approximation within tolerance of the curve. Returns 1 when the
// remaining curve can be replaced by a single segment (including the
// degenerate collinear-control case).
func (q QuadBez) FlatteningStep(tolerance float64) float64 {
	v1 := q.P1.Sub(q.P0)
	v2 := q.P2.Sub(q.P0)
	cross := v2.Cross(v1)
	h := math.Hypot(v1.X, v1.Y)
	if math.Abs(cross*h) <= 1e-9 {
		return 1.0
	}
	s2inv := h / cross
	t := 2.0 * math.Sqrt(tolerance*math.Abs(s2inv)/3.0)
	if t >= 1.0 {
		return 1.0
	}
	return t
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points
// P0, P1, P2, P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// NewCubicBez creates a new cubic Bezier curve.
func NewCubicBez(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	cc := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + cc*c.P2.X + d*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + cc*c.P2.Y + d*c.P3.Y,
	}
}

// Deriv returns the first derivative at parameter t.
func (c CubicBez) Deriv(t float64) Vec2 {
	mt := 1.0 - t
	v0 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	v1 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	v2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return v0.Add(v1).Add(v2)
}

// Deriv2 returns the second derivative at parameter t.
func (c CubicBez) Deriv2(t float64) Vec2 {
	mt := 1.0 - t
	v0 := c.P2.Sub(c.P1).Sub(c.P1.Sub(c.P0)).Mul(6 * mt)
	v1 := c.P3.Sub(c.P2).Sub(c.P2.Sub(c.P1)).Mul(6 * t)
	return v0.Add(v1)
}

// Subdivide splits the curve at t=0.5 into two halves.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.Split(0.5)
}

// Split divides the curve at parameter t using de Casteljau's
// algorithm.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	d := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bd := b.Lerp(d, t)
	m := ab.Lerp(bd, t)
	return CubicBez{P0: c.P0, P1: a, P2: ab, P3: m},
		CubicBez{P0: m, P1: bd, P2: d, P3: c.P3}
}

// Subsegment returns the portion of the curve from t0 to t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	if t0 == 0 {
		first, _ := c.Split(t1)
		return first
	}
	_, rest := c.Split(t0)
	if t1 == 1 {
		return rest
	}
	sub, _ := rest.Split((t1 - t0) / (1 - t0))
	return sub
}

// BoundingBox returns a conservative axis-aligned bounding box: the
// box of the control polygon, which always contains the curve.
func (c CubicBez) BoundingBox() Rect {
	return NewRect(c.P0, c.P1).Union(NewRect(c.P2, c.P3))
}

// InflectionPoints returns the parameters in (0,1) where the curve's
// curvature changes sign, found as the real roots of the quadratic in
// t derived from cross(B'(t), B''(t)).
func (c CubicBez) InflectionPoints() []float64 {
	// With a = P1-P0, b = P2-P1-a, d = P3-P0-3(P2-P1):
	// cross(B', B'') expands to a quadratic
	// (b x d) t^2 + (a x d) t + (a x b) = 0 up to constant factors.
	a := c.P1.Sub(c.P0)
	b := c.P2.Sub(c.P1).Sub(a)
	d := c.P3.Sub(c.P0).Sub(c.P2.Sub(c.P1).Mul(3))

	qa := b.Cross(d)
	qb := a.Cross(d)
	qc := a.Cross(b)

	var roots []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if qa == 0 {
		if qb != 0 {
			add(-qc / qb)
		}
		return roots
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	// Citardauq form keeps precision when qb dominates.
	q := -0.5 * (qb + math.Copysign(sq, qb))
	add(q / qa)
	if q != 0 {
		add(qc / q)
	}
	if len(roots) == 2 && roots[0] > roots[1] {
		roots[0], roots[1] = roots[1], roots[0]
	}
	return roots
}
