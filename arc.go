package tess

import "math"

// Arc represents an elliptical arc: a sweep over an ellipse centered
// at Center with the given Radii, whose x axis is rotated by
// XRotation, from StartAngle over SweepAngle. A negative sweep runs
// clockwise in angle space.
type Arc struct {
	Center     Point
	Radii      Vec2
	XRotation  Angle
	StartAngle Angle
	SweepAngle Angle
}

// Sample returns the point on the arc's ellipse at the given angle.
func (a Arc) Sample(angle Angle) Point {
	u := angle.Vector()
	p := Vec2{X: u.X * a.Radii.X, Y: u.Y * a.Radii.Y}
	cos := math.Cos(a.XRotation.Radians())
	sin := math.Sin(a.XRotation.Radians())
	return a.Center.Add(Vec2{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	})
}

// sampleTangent returns the (unnormalized) tangent direction at angle.
func (a Arc) sampleTangent(angle Angle) Vec2 {
	r := angle.Radians()
	d := Vec2{X: -a.Radii.X * math.Sin(r), Y: a.Radii.Y * math.Cos(r)}
	cos := math.Cos(a.XRotation.Radians())
	sin := math.Sin(a.XRotation.Radians())
	return Vec2{
		X: d.X*cos - d.Y*sin,
		Y: d.X*sin + d.Y*cos,
	}
}

// From returns the arc's start point.
func (a Arc) From() Point {
	return a.Sample(a.StartAngle)
}

// To returns the arc's end point.
func (a Arc) To() Point {
	return a.Sample(a.StartAngle + a.SweepAngle)
}

// ToQuads converts the arc to a sequence of quadratic Bezier curves,
// each covering an angular span of at most pi/2. Consecutive quads
// share endpoints; the first starts at From and the last ends at To.
func (a Arc) ToQuads() []QuadBez {
	sweep := a.SweepAngle.Radians()
	if sweep == 0 {
		p := a.From()
		return []QuadBez{{P0: p, P1: p, P2: p}}
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)
	quads := make([]QuadBez, 0, n)
	for i := 0; i < n; i++ {
		a0 := a.StartAngle + Angle(float64(i)*step)
		a1 := a0 + Angle(step)
		quads = append(quads, a.quadBetween(a0, a1))
	}
	return quads
}

// quadBetween approximates the sub-arc from a0 to a1 by a quadratic
// whose control point is the intersection of the endpoint tangents.
func (a Arc) quadBetween(a0, a1 Angle) QuadBez {
	from := a.Sample(a0)
	to := a.Sample(a1)
	t0 := a.sampleTangent(a0)
	t1 := a.sampleTangent(a1)
	// Intersect the tangent lines; fall back to the chord midpoint
	// when the tangents are parallel (tiny or degenerate sub-arc).
	denom := t0.Cross(t1)
	if math.Abs(denom) < 1e-12 {
		return QuadBez{P0: from, P1: from.Mid(to), P2: to}
	}
	w := to.Sub(from)
	s := w.Cross(t1) / denom
	ctrl := from.Add(t0.Mul(s))
	return QuadBez{P0: from, P1: ctrl, P2: to}
}
