package tess

import (
	"fmt"
	"math"
)

// Stroke tessellation: an edge walker over each flattened sub-path.
// The walker keeps a three-point window (prev, current, next) and
// emits a pair of offset vertices per skeleton vertex, with join
// geometry between segments and cap geometry at the open endpoints of
// non-closed sub-paths. Every vertex carries its advancement (the
// distance along the sub-path) and its side, for texturing and
// dashing downstream.

// epsJoin is the turn angle below which a join degenerates to a
// straight extrusion.
const epsJoin = 1e-3

// StrokeTessellator converts stroked paths into triangle meshes.
//
// Internal buffers are retained across calls to amortize allocation;
// call Reset to release them. A StrokeTessellator must not be used
// from multiple goroutines concurrently.
type StrokeTessellator struct {
	points []Point
	adv    []float64

	builder StrokeGeometryBuilder
	opts    StrokeOptions
	off     float64 // position offset (0 when ApplyLineWidth is false)
	half    float64 // geometric half width, used for subdivision
	err     error
}

// NewStrokeTessellator creates a stroke tessellator with preallocated
// scratch buffers.
func NewStrokeTessellator() *StrokeTessellator {
	return &StrokeTessellator{
		points: make([]Point, 0, 64),
		adv:    make([]float64, 0, 64),
	}
}

// Reset releases the tessellator's retained scratch storage.
func (t *StrokeTessellator) Reset() {
	*t = *NewStrokeTessellator()
}

// Tessellate strokes the path according to the options, pushing
// vertices and triangles into the builder. On success it returns the
// builder's Count; on failure the builder's geometry is aborted and
// no partial output is retained.
func (t *StrokeTessellator) Tessellate(path *Path, options StrokeOptions, builder StrokeGeometryBuilder) (Count, error) {
	tol, err := checkTolerance(options.Tolerance)
	if err != nil {
		return Count{}, err
	}
	if !path.checkFinite() {
		return Count{}, fmt.Errorf("%w: non-finite coordinate", ErrInvalidInput)
	}

	builder.BeginGeometry()
	if options.LineWidth <= 0 {
		return builder.EndGeometry(), nil
	}

	t.builder = builder
	t.opts = options
	if t.opts.MiterLimit < 1 {
		t.opts.MiterLimit = 1
	}
	t.half = options.LineWidth / 2
	t.off = t.half
	if !options.ApplyLineWidth {
		t.off = 0
	}
	t.err = nil

	snap := tol / 16
	closed := false
	flush := func() {
		t.strokeSubPath(t.points, t.adv, closed, tol)
		t.points = t.points[:0]
		t.adv = t.adv[:0]
	}
	appendPoint := func(p Point) {
		n := len(t.points)
		if n > 0 && p.Approx(t.points[n-1], snap) {
			return
		}
		a := 0.0
		if n > 0 {
			a = t.adv[n-1] + p.Distance(t.points[n-1])
		}
		t.points = append(t.points, p)
		t.adv = append(t.adv, a)
	}

	path.Events(func(ev PathEvent) {
		if t.err != nil {
			return
		}
		switch ev.Kind {
		case EventBegin:
			t.points = t.points[:0]
			t.adv = t.adv[:0]
			appendPoint(ev.At)
		case EventEnd:
			closed = ev.Close
			flush()
		default:
			flattenEvent(ev, tol, appendPoint)
		}
	})

	if t.err != nil {
		builder.AbortGeometry()
		return Count{}, t.err
	}
	return builder.EndGeometry(), nil
}

// vertex pushes one stroke vertex, funneling builder failures into
// the tessellator error state.
func (t *StrokeTessellator) vertex(pos Point, normal Vec2, adv float64, side Side) VertexID {
	if t.err != nil {
		return 0
	}
	id, err := t.builder.AddStrokeVertex(StrokeVertex{
		Position:    pos,
		Normal:      normal,
		Advancement: adv,
		Side:        side,
	})
	if err != nil {
		t.err = err
	}
	return id
}

// pair emits the left and right offset vertices at a skeleton point.
// The normal may carry a miter scale factor; positions are displaced
// by normal*off.
func (t *StrokeTessellator) pair(p Point, normal Vec2, adv float64) (left, right VertexID) {
	left = t.vertex(p.Add(normal.Mul(t.off)), normal, adv, SideLeft)
	right = t.vertex(p.Add(normal.Mul(-t.off)), normal.Neg(), adv, SideRight)
	return left, right
}

// quad connects two consecutive vertex pairs with two triangles.
func (t *StrokeTessellator) quad(l0, r0, l1, r1 VertexID) {
	if t.err != nil {
		return
	}
	t.builder.AddTriangle(l0, r0, r1)
	t.builder.AddTriangle(l0, r1, l1)
}

// strokeSubPath emits the offset band for one flattened sub-path.
func (t *StrokeTessellator) strokeSubPath(pts []Point, adv []float64, closed bool, tol float64) {
	if t.err != nil || len(pts) < 2 {
		return
	}
	if closed && pts[len(pts)-1].Approx(pts[0], tol/16) {
		pts = pts[:len(pts)-1]
		adv = adv[:len(adv)-1]
	}
	if closed && len(pts) < 3 {
		closed = false
	}
	if len(pts) < 2 {
		return
	}

	if closed {
		t.strokeClosed(pts, adv, tol)
		return
	}
	t.strokeOpen(pts, adv, tol)
}

func (t *StrokeTessellator) strokeOpen(pts []Point, adv []float64, tol float64) {
	d0 := pts[1].Sub(pts[0]).Normalize()
	n0 := d0.Perp()

	t.startCap(pts[0], d0, tol)
	prevL, prevR := t.pair(pts[0], n0, adv[0])

	for i := 1; i < len(pts)-1; i++ {
		din := pts[i].Sub(pts[i-1]).Normalize()
		dout := pts[i+1].Sub(pts[i]).Normalize()
		fl, fr, ll, lr := t.join(pts[i], din, dout, adv[i], tol)
		t.quad(prevL, prevR, fl, fr)
		prevL, prevR = ll, lr
	}

	last := len(pts) - 1
	dEnd := pts[last].Sub(pts[last-1]).Normalize()
	nEnd := dEnd.Perp()
	endL, endR := t.pair(pts[last], nEnd, adv[last])
	t.quad(prevL, prevR, endL, endR)
	t.endCap(pts[last], dEnd, adv[last], endL, endR, tol)
}

func (t *StrokeTessellator) strokeClosed(pts []Point, adv []float64, tol float64) {
	n := len(pts)
	din := pts[0].Sub(pts[n-1]).Normalize()
	dout := pts[1].Sub(pts[0]).Normalize()
	firstL, firstR, prevL, prevR := t.join(pts[0], din, dout, adv[0], tol)

	for i := 1; i < n; i++ {
		din := pts[i].Sub(pts[i-1]).Normalize()
		dout := pts[(i+1)%n].Sub(pts[i]).Normalize()
		fl, fr, ll, lr := t.join(pts[i], din, dout, adv[i], tol)
		t.quad(prevL, prevR, fl, fr)
		prevL, prevR = ll, lr
	}

	// Close the band back onto the first join.
	t.quad(prevL, prevR, firstL, firstR)
}

// join emits the geometry at an interior skeleton vertex and returns
// the ids of the first and last offset pairs so neighbors can attach.
func (t *StrokeTessellator) join(v Point, d0, d1 Vec2, adv, tol float64) (firstL, firstR, lastL, lastR VertexID) {
	n0 := d0.Perp()
	n1 := d1.Perp()
	nsum := n0.Add(n1)
	lenSum := nsum.Length()

	if lenSum < 1e-9 {
		// Full U-turn: the bisector is undefined, so cut the corner
		// with two flat pairs.
		l0, r0 := t.pair(v, n0, adv)
		l1, r1 := t.pair(v, n1, adv)
		t.quad(l0, r0, l1, r1)
		return l0, r0, l1, r1
	}

	nb := nsum.Div(lenSum)
	m := 2 / lenSum

	if math.Abs(d0.Angle(d1)) < epsJoin {
		l, r := t.pair(v, nb.Mul(m), adv)
		return l, r, l, r
	}

	switch t.opts.Join {
	case LineJoinMiter:
		if m <= t.opts.MiterLimit {
			l, r := t.pair(v, nb.Mul(m), adv)
			return l, r, l, r
		}
		return t.bevelJoin(v, d0, d1, adv)
	case LineJoinMiterClip:
		if m <= t.opts.MiterLimit {
			l, r := t.pair(v, nb.Mul(m), adv)
			return l, r, l, r
		}
		return t.miterClipJoin(v, d0, d1, nb, m, adv)
	case LineJoinRound:
		return t.roundJoin(v, d0, d1, adv, tol)
	default: // LineJoinBevel
		return t.bevelJoin(v, d0, d1, adv)
	}
}

// bevelJoin cuts the corner with the chord between the two offset
// edges. The connecting quad covers the outer triangular gap; the
// slight inner overdraw on sharp bends is accepted.
func (t *StrokeTessellator) bevelJoin(v Point, d0, d1 Vec2, adv float64) (firstL, firstR, lastL, lastR VertexID) {
	n0 := d0.Perp()
	n1 := d1.Perp()
	l0, r0 := t.pair(v, n0, adv)
	l1, r1 := t.pair(v, n1, adv)
	t.quad(l0, r0, l1, r1)
	return l0, r0, l1, r1
}

// outerSide returns the side of the band on the outside of the bend
// and the matching offset directions for the incoming and outgoing
// segments.
func outerSide(d0, d1 Vec2) (Side, Vec2, Vec2) {
	n0 := d0.Perp()
	n1 := d1.Perp()
	if d0.Cross(d1) > 0 {
		return SideRight, n0.Neg(), n1.Neg()
	}
	return SideLeft, n0, n1
}

// roundJoin replaces the bevel chord with an arc fan subdivided under
// the tolerance.
func (t *StrokeTessellator) roundJoin(v Point, d0, d1 Vec2, adv, tol float64) (firstL, firstR, lastL, lastR VertexID) {
	firstL, firstR, lastL, lastR = t.bevelJoin(v, d0, d1, adv)
	if t.off == 0 || t.err != nil {
		return
	}

	side, w0, w1 := outerSide(d0, d1)
	anchor := firstR
	outerA, outerB := firstL, lastL
	if side == SideRight {
		anchor = firstL
		outerA, outerB = firstR, lastR
	}

	sweep := w0.Angle(w1)
	steps := arcSteps(sweep, t.half, tol)
	prev := outerA
	a0 := w0.Atan2()
	for i := 1; i < steps; i++ {
		w := Angle(a0 + sweep*float64(i)/float64(steps)).Vector()
		id := t.vertex(v.Add(w.Mul(t.off)), w, adv, side)
		t.fan(anchor, prev, id)
		prev = id
	}
	t.fan(anchor, prev, outerB)
	return
}

// miterClipJoin truncates an over-limit miter perpendicular to the
// bisector at miterLimit * width/2.
func (t *StrokeTessellator) miterClipJoin(v Point, d0, d1 Vec2, nb Vec2, m, adv float64) (firstL, firstR, lastL, lastR VertexID) {
	firstL, firstR, lastL, lastR = t.bevelJoin(v, d0, d1, adv)
	if t.off == 0 || t.err != nil {
		return
	}

	side, w0, w1 := outerSide(d0, d1)
	anchor := firstR
	outerA, outerB := firstL, lastL
	if side == SideRight {
		anchor = firstL
		outerA, outerB = firstR, lastR
		nb = nb.Neg()
	}

	miter := v.Add(nb.Mul(t.off * m))
	clipDist := t.opts.MiterLimit * t.off
	clipAt := func(corner Point) Point {
		f0 := corner.Sub(v).Dot(nb)
		f1 := miter.Sub(v).Dot(nb)
		if f1-f0 == 0 {
			return corner
		}
		s := (clipDist - f0) / (f1 - f0)
		return corner.Lerp(miter, s)
	}
	cornerA := v.Add(w0.Mul(t.off))
	cornerB := v.Add(w1.Mul(t.off))
	c1 := clipAt(cornerA)
	c2 := clipAt(cornerB)

	id1 := t.vertex(c1, c1.Sub(v).Div(t.off), adv, side)
	id2 := t.vertex(c2, c2.Sub(v).Div(t.off), adv, side)
	t.fan(anchor, outerA, id1)
	t.fan(anchor, id1, id2)
	t.fan(anchor, id2, outerB)
	return
}

// fan emits one triangle of a join or cap fan.
func (t *StrokeTessellator) fan(a, b, c VertexID) {
	if t.err != nil {
		return
	}
	t.builder.AddTriangle(a, b, c)
}

// startCap emits the cap at the start of an open sub-path. d is the
// direction into the path.
func (t *StrokeTessellator) startCap(p Point, d Vec2, tol float64) {
	switch t.opts.StartCap {
	case LineCapButt:
		return
	case LineCapSquare:
		if t.off == 0 {
			return
		}
		n := d.Perp()
		ext := p.Add(d.Mul(-t.off))
		l0, r0 := t.pair(ext, n, 0)
		l1, r1 := t.pair(p, n, 0)
		t.quad(l0, r0, l1, r1)
	case LineCapRound:
		if t.off == 0 {
			return
		}
		// Half circle from +n back through -d to -n.
		n := d.Perp()
		t.halfCircle(p, n, 0, tol)
	}
}

// endCap emits the cap at the end of an open sub-path. d is the
// direction out of the path; endL and endR are the final pair.
func (t *StrokeTessellator) endCap(p Point, d Vec2, adv float64, endL, endR VertexID, tol float64) {
	switch t.opts.EndCap {
	case LineCapButt:
		return
	case LineCapSquare:
		if t.off == 0 {
			return
		}
		n := d.Perp()
		ext := p.Add(d.Mul(t.off))
		l1, r1 := t.pair(ext, n, adv)
		t.quad(endL, endR, l1, r1)
	case LineCapRound:
		if t.off == 0 {
			return
		}
		// Half circle from -n forward through +d to +n.
		n := d.Perp()
		t.halfCircle(p, n.Neg(), adv, tol)
	}
}

// halfCircle emits a semicircular fan centered at p, sweeping pi
// counter-clockwise from the direction w0.
func (t *StrokeTessellator) halfCircle(p Point, w0 Vec2, adv, tol float64) {
	steps := arcSteps(math.Pi, t.half, tol)
	center := t.vertex(p, Vec2{}, adv, SideLeft)
	a0 := w0.Atan2()
	prev := t.vertex(p.Add(w0.Mul(t.off)), w0, adv, SideLeft)
	for i := 1; i <= steps; i++ {
		w := Angle(a0 + math.Pi*float64(i)/float64(steps)).Vector()
		id := t.vertex(p.Add(w.Mul(t.off)), w, adv, SideLeft)
		t.fan(center, prev, id)
		prev = id
	}
}

// arcSteps returns the subdivision count that keeps a circular arc of
// the given radius within tolerance of its inscribed fan.
func arcSteps(sweep, radius, tol float64) int {
	if radius <= tol {
		return 1
	}
	a := 1 - tol/radius
	if a < -1 {
		a = -1
	}
	da := 2 * math.Acos(a)
	if da <= 0 {
		return 1
	}
	steps := int(math.Ceil(math.Abs(sweep) / da))
	if steps < 1 {
		steps = 1
	}
	if steps > 256 {
		steps = 256
	}
	return steps
}
