package tess

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// Fill tessellation: a sweep-line algorithm over curve-flattened
// polygons. The sweep advances in lexicographic (y, x) order,
// maintaining an active-edge list sorted by x and a list of open
// spans, each bounded by a left and a right active edge and owning a
// monotone-chain triangulator. Self-intersections are detected
// between adjacent active edges and resolved by splitting the edges
// at the crossing, inserting an induced vertex event.

// fillEdge is an edge waiting in the event queue. Winding is +1 when
// the original contour traversed the edge upward (the endpoints were
// swapped to satisfy upper < lower), -1 otherwise.
type fillEdge struct {
	upper, lower Point
	winding      int
}

// activeEdge is an edge currently intersecting the sweep line, or a
// virtual merge edge anchored at a merge vertex (upper == lower,
// merge true). Spans hold pointers into the active list, so
// shortening an edge's lower endpoint during an intersection split is
// visible to its span.
type activeEdge struct {
	upper, lower Point
	winding      int
	merge        bool
}

// span is an open filled region bounded by a left and a right active
// edge.
type span struct {
	left, right *activeEdge
	tess        monotoneTess
}

// sweepEvent is one entry of the event queue: a position, optionally
// carrying an edge that starts there. Position-only events mark edge
// endings and intersection points.
type sweepEvent struct {
	pos  Point
	edge *fillEdge
}

type eventQueue []sweepEvent

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	return q[i].pos.Before(q[j].pos)
}
func (q eventQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)        { *q = append(*q, x.(sweepEvent)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	*q = old[:n-1]
	return ev
}

// FillTessellator converts filled paths into triangle meshes.
//
// The zero value is not ready for use; call NewFillTessellator.
// Internal buffers are retained across calls to amortize allocation;
// call Reset to release them. A FillTessellator must not be used from
// multiple goroutines concurrently.
type FillTessellator struct {
	queue   eventQueue
	active  []*activeEdge
	spans   []*span
	starts  []*fillEdge
	ids     map[Point]VertexID
	normals map[Point]Vec2

	builder FillGeometryBuilder
	rule    FillRule
	snap    float64
	err     error
}

// NewFillTessellator creates a fill tessellator with preallocated
// scratch buffers.
func NewFillTessellator() *FillTessellator {
	return &FillTessellator{
		queue:   make(eventQueue, 0, 128),
		active:  make([]*activeEdge, 0, 32),
		spans:   make([]*span, 0, 16),
		ids:     make(map[Point]VertexID, 64),
		normals: make(map[Point]Vec2, 64),
	}
}

// Reset releases the tessellator's retained scratch storage.
func (t *FillTessellator) Reset() {
	*t = *NewFillTessellator()
}

// Tessellate fills the path according to the options, pushing
// vertices and triangles into the builder. On success it returns the
// builder's Count; on failure the builder's geometry is aborted and
// no partial output is retained.
func (t *FillTessellator) Tessellate(path *Path, options FillOptions, builder FillGeometryBuilder) (Count, error) {
	tol, err := checkTolerance(options.Tolerance)
	if err != nil {
		return Count{}, err
	}
	if !path.checkFinite() {
		return Count{}, fmt.Errorf("%w: non-finite coordinate", ErrInvalidInput)
	}

	t.builder = builder
	t.rule = options.Rule
	t.snap = tol / 16
	t.err = nil
	t.queue = t.queue[:0]
	t.active = t.active[:0]
	t.spans = t.spans[:0]
	clear(t.ids)
	clear(t.normals)

	builder.BeginGeometry()

	t.enqueuePath(path, tol)
	heap.Init(&t.queue)
	t.sweep()

	if t.err != nil {
		builder.AbortGeometry()
		return Count{}, t.err
	}
	return builder.EndGeometry(), nil
}

// enqueuePath flattens every sub-path into edges and seeds the event
// queue. Sub-paths are implicitly closed.
func (t *FillTessellator) enqueuePath(path *Path, tolerance float64) {
	var contour []Point
	flush := func() {
		t.enqueueContour(contour)
		contour = contour[:0]
	}
	path.Events(func(ev PathEvent) {
		switch ev.Kind {
		case EventBegin:
			contour = append(contour[:0], ev.At)
		case EventEnd:
			flush()
		default:
			flattenEvent(ev, tolerance, func(p Point) {
				contour = append(contour, p)
			})
		}
	})
}

// enqueueContour turns one closed contour into queue events and
// records outward vertex normals.
func (t *FillTessellator) enqueueContour(points []Point) {
	// Drop coincident consecutive points; close implicitly.
	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if len(pts) == 0 || !p.Approx(pts[len(pts)-1], t.snap) {
			pts = append(pts, p)
		}
	}
	for len(pts) > 1 && pts[len(pts)-1].Approx(pts[0], t.snap) {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return
	}

	// Contour orientation decides which way normals face.
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	sign := 1.0
	if area > 0 {
		sign = -1.0
	}

	for i := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		cur := pts[i]
		next := pts[(i+1)%len(pts)]

		n := cur.Sub(prev).Normalize().Perp().Add(next.Sub(cur).Normalize().Perp()).Normalize().Mul(sign)
		if _, seen := t.normals[cur]; !seen {
			t.normals[cur] = n
		}

		upper, lower, winding := cur, next, -1
		if lower.Before(upper) {
			upper, lower = lower, upper
			winding = 1
		}
		edge := &fillEdge{upper: upper, lower: lower, winding: winding}
		t.queue = append(t.queue, sweepEvent{pos: upper, edge: edge})
		t.queue = append(t.queue, sweepEvent{pos: lower})
	}
}

// sweep consumes the event queue, grouping equal positions into
// single vertex events.
func (t *FillTessellator) sweep() {
	events := 0
	for len(t.queue) > 0 && t.err == nil {
		first := heap.Pop(&t.queue).(sweepEvent)
		p := first.pos
		t.starts = t.starts[:0]
		if first.edge != nil {
			t.starts = append(t.starts, first.edge)
		}
		for len(t.queue) > 0 && t.queue[0].pos.Approx(p, t.snap) {
			ev := heap.Pop(&t.queue).(sweepEvent)
			if ev.edge != nil {
				ev.edge.upper = p // snap to the batch position
				t.starts = append(t.starts, ev.edge)
			}
		}
		t.processEvent(p, t.starts)
		events++
	}
	Logger().Debug("fill sweep finished", "events", events)
}

// xAt returns the x coordinate where the edge crosses the sweep at
// position p. Horizontal edges clamp the sweep x into their range.
func xAt(e *activeEdge, p Point) float64 {
	if e.merge {
		return e.upper.X
	}
	if e.lower.Y == e.upper.Y {
		return math.Max(e.upper.X, math.Min(p.X, e.lower.X))
	}
	if p.Y <= e.upper.Y {
		return e.upper.X
	}
	if p.Y >= e.lower.Y {
		return e.lower.X
	}
	return e.upper.X + (e.lower.X-e.upper.X)*(p.Y-e.upper.Y)/(e.lower.Y-e.upper.Y)
}

// edgeSlope orders edges sharing an upper endpoint: smaller slope is
// further left just below the vertex. Horizontal edges sort last.
func edgeSlope(upper, lower Point) float64 {
	dy := lower.Y - upper.Y
	if dy == 0 {
		return math.Inf(1)
	}
	return (lower.X - upper.X) / dy
}

func (t *FillTessellator) inside(count, winding int) bool {
	if t.rule == FillRuleNonZero {
		return winding != 0
	}
	return count%2 == 1
}

func (t *FillTessellator) internalErr(msg string) {
	if t.err == nil {
		t.err = fmt.Errorf("%w: %s", ErrInternal, msg)
	}
}

// processEvent handles all edges starting or ending at position p.
func (t *FillTessellator) processEvent(p Point, starts []*fillEdge) {
	// Split any active edge that passes through p without ending
	// there, so the vertex only ever touches edge endpoints.
	for _, e := range t.active {
		if e.merge || e.lower.Approx(p, t.snap) {
			continue
		}
		if math.Abs(xAt(e, p)-p.X) <= t.snap &&
			e.upper.Before(p) && p.Before(e.lower) &&
			!e.upper.Approx(p, t.snap) {
			starts = append(starts, &fillEdge{upper: p, lower: e.lower, winding: e.winding})
			e.lower = p
		}
	}

	// Locate the ending edges. They meet at p, so they are contiguous
	// in the active list.
	first, count := -1, 0
	for i, e := range t.active {
		if !e.merge && e.lower.Approx(p, t.snap) {
			if first < 0 {
				first = i
			} else if first+count != i {
				t.internalErr("ending edges not contiguous")
				return
			}
			count++
		}
	}
	if first < 0 {
		first = t.findInsertPos(p)
	}

	// Drop degenerate new edges and sort the rest by slope.
	valid := starts[:0]
	for _, e := range starts {
		if !e.upper.Approx(e.lower, t.snap) {
			valid = append(valid, e)
		}
	}
	starts = valid
	sort.SliceStable(starts, func(i, j int) bool {
		return edgeSlope(starts[i].upper, starts[i].lower) < edgeSlope(starts[j].upper, starts[j].lower)
	})

	if count == 0 && len(starts) == 0 {
		return // stale position event
	}

	// Winding state immediately left of the vertex.
	baseCount, baseWinding := 0, 0
	for _, e := range t.active[:first] {
		if !e.merge {
			baseCount++
			baseWinding += e.winding
		}
	}
	insideLeft := t.inside(baseCount, baseWinding)

	ending := t.active[first : first+count]

	// Boundary edges: those whose two sides disagree on insideness.
	boundary := func(edges []*activeEdge) []*activeEdge {
		var out []*activeEdge
		c, w := baseCount, baseWinding
		prev := insideLeft
		for _, e := range edges {
			c++
			w += e.winding
			cur := t.inside(c, w)
			if cur != prev {
				out = append(out, e)
			}
			prev = cur
		}
		return out
	}
	bAbove := boundary(ending)

	// Mutate the active list: remove ending, insert starting.
	newActive := make([]*activeEdge, 0, len(starts))
	for _, e := range starts {
		newActive = append(newActive, &activeEdge{upper: e.upper, lower: e.lower, winding: e.winding})
	}
	t.active = append(t.active[:first], append(append([]*activeEdge{}, newActive...), t.active[first+count:]...)...)
	bBelow := boundary(newActive)

	// A closed contour contributes matched windings above and below
	// every vertex; an odd boundary count means coincident geometry
	// defeated the classification. Demote the trailing boundary edge
	// and continue rather than derailing the sweep.
	if (len(bAbove)+len(bBelow))%2 == 1 {
		Logger().Warn("fill: demoting unmatched boundary edge", "x", p.X, "y", p.Y)
		if len(bBelow) > 0 {
			bBelow = bBelow[:len(bBelow)-1]
		} else {
			bAbove = bAbove[:len(bAbove)-1]
		}
	}

	t.applySpanOps(p, insideLeft, bAbove, bBelow)
	if t.err != nil {
		return
	}

	// Test the adjacencies disturbed by this event for intersections
	// strictly below the sweep position.
	lo := first - 1
	if lo < 0 {
		lo = 0
	}
	hi := first + len(newActive)
	if hi > len(t.active)-1 {
		hi = len(t.active) - 1
	}
	for i := lo; i < hi; i++ {
		t.checkIntersection(p, t.active[i], t.active[i+1])
	}
}

// findInsertPos returns the index where edges starting at p belong.
func (t *FillTessellator) findInsertPos(p Point) int {
	for i, e := range t.active {
		if e.merge {
			continue
		}
		if xAt(e, p) > p.X {
			return i
		}
	}
	return len(t.active)
}

// applySpanOps updates the span list for a vertex event with the
// given boundary edges above and below.
func (t *FillTessellator) applySpanOps(p Point, insideLeft bool, bAbove, bBelow []*activeEdge) {
	ka, mb := len(bAbove), len(bBelow)
	if ka == 0 && mb == 0 {
		return
	}
	id, ok := t.vertexID(p)
	if !ok {
		return
	}

	aLo, aHi := 0, ka
	bLo, bHi := 0, mb
	insideRight := insideLeft != (ka%2 == 1)

	if insideLeft {
		switch {
		case ka > 0 && mb > 0:
			// The span left of the vertex continues on its right
			// chain.
			s := t.findSpanWithRight(bAbove[0])
			if s == nil {
				t.internalErr("no span for right-chain continuation")
				return
			}
			s.right = bBelow[0]
			s.tess.vertex(p, id, monoRight, t.emitTriangle)
			aLo, bLo = 1, 1
		case ka >= 2 && mb == 0:
			// Merge: the flank spans meet at p. Inner pairs close
			// first so the flank spans end up adjacent.
			for j := 1; j+1 < ka; j += 2 {
				t.closeSpans(bAbove[j], bAbove[j+1], p, id)
				if t.err != nil {
					return
				}
			}
			t.mergeSpans(bAbove[0], bAbove[ka-1], p, id)
			return
		case ka == 0 && mb >= 2:
			// Split: p lies strictly inside a span. Inner pairs open
			// fresh spans.
			for j := 1; j+1 < mb; j += 2 {
				t.openSpanAt(p, id, bBelow[j], bBelow[j+1])
			}
			t.splitSpan(p, id, bBelow[0], bBelow[mb-1])
			return
		default:
			t.internalErr("inconsistent event classification")
			return
		}
	}
	if insideRight && aHi > aLo && bHi > bLo {
		// The span right of the vertex continues on its left chain.
		s := t.findSpanWithLeft(bAbove[aHi-1])
		if s == nil {
			t.internalErr("no span for left-chain continuation")
			return
		}
		s.left = bBelow[bHi-1]
		s.tess.vertex(p, id, monoLeft, t.emitTriangle)
		aHi--
		bHi--
	}

	// Remaining middle structure alternates outside-in from both
	// flanks: ending pairs close spans, starting pairs open them.
	for j := aLo; j+1 < aHi; j += 2 {
		t.closeSpans(bAbove[j], bAbove[j+1], p, id)
		if t.err != nil {
			return
		}
	}
	for j := bLo; j+1 < bHi; j += 2 {
		t.openSpanAt(p, id, bBelow[j], bBelow[j+1])
	}
}

// findSpanWithRight returns the span whose right boundary is e.
func (t *FillTessellator) findSpanWithRight(e *activeEdge) *span {
	for _, s := range t.spans {
		if s.right == e {
			return s
		}
	}
	return nil
}

// findSpanWithLeft returns the span whose left boundary is e.
func (t *FillTessellator) findSpanWithLeft(e *activeEdge) *span {
	for _, s := range t.spans {
		if s.left == e {
			return s
		}
	}
	return nil
}

// closeSpans ends every span bounded between edges l and r at p.
// Normally that is a single span; after merges, the physical gap may
// hold a chain of spans linked by virtual merge edges, and the whole
// chain closes.
func (t *FillTessellator) closeSpans(l, r *activeEdge, p Point, id VertexID) {
	start := -1
	for i, s := range t.spans {
		if s.left == l {
			start = i
			break
		}
	}
	if start < 0 {
		t.internalErr("no span to close")
		return
	}
	end := start
	for {
		s := t.spans[end]
		s.tess.end(p, id, t.emitTriangle)
		if s.right == r {
			break
		}
		if !s.right.merge || end+1 >= len(t.spans) {
			t.internalErr("span chain does not reach closing edge")
			return
		}
		end++
	}
	t.spans = append(t.spans[:start], t.spans[end+1:]...)
}

// mergeSpans records a pending merge at p between the span left of
// the vertex and the span right of it. Both stay open, linked by
// virtual merge edges, until a later split or end on the shared gap
// resolves them.
func (t *FillTessellator) mergeSpans(la, ra *activeEdge, p Point, id VertexID) {
	sl := t.findSpanWithRight(la)
	sr := t.findSpanWithLeft(ra)
	if sl == nil || sr == nil {
		t.internalErr("merge without flanking spans")
		return
	}
	sl.tess.vertex(p, id, monoRight, t.emitTriangle)
	sr.tess.vertex(p, id, monoLeft, t.emitTriangle)
	m := &activeEdge{upper: p, lower: p, merge: true}
	sl.right = m
	sr.left = m
}

// splitSpan divides the span containing p, or resolves a pending
// merge whose gap contains p.
func (t *FillTessellator) splitSpan(p Point, id VertexID, bl, br *activeEdge) {
	// A pending merge leaves two spans sharing the physical gap; the
	// split hands one new edge to each and clears the markers.
	for i := 0; i+1 < len(t.spans); i++ {
		sl, sr := t.spans[i], t.spans[i+1]
		if sl.right.merge && sl.right == sr.left &&
			xAt(sl.left, p) <= p.X+t.snap && xAt(sr.right, p)+t.snap >= p.X {
			sl.right = bl
			sl.tess.vertex(p, id, monoRight, t.emitTriangle)
			sr.left = br
			sr.tess.vertex(p, id, monoLeft, t.emitTriangle)
			return
		}
	}

	for i, s := range t.spans {
		if s.left.merge || s.right.merge {
			continue
		}
		if xAt(s.left, p) < p.X && p.X < xAt(s.right, p) {
			helper := s.tess.helper()
			right := &span{left: br, right: s.right}
			right.tess.beginWithHelper(helper, p, id, monoLeft, t.emitTriangle)
			s.right = bl
			s.tess.vertex(p, id, monoRight, t.emitTriangle)
			t.spans = append(t.spans[:i+1], append([]*span{right}, t.spans[i+1:]...)...)
			return
		}
	}
	t.internalErr("split outside any span")
}

// openSpanAt starts a new span at p bounded by edges l and r.
func (t *FillTessellator) openSpanAt(p Point, id VertexID, l, r *activeEdge) {
	s := &span{left: l, right: r}
	s.tess.begin(p, id)

	// Spans whose right boundary sits at or left of p (including the
	// continuation whose right edge starts exactly at p) stay to the
	// left of the new span.
	idx := len(t.spans)
	for i, c := range t.spans {
		rx := p.X + 1 // treat unresolvable boundaries as right of p
		if !c.right.merge {
			rx = xAt(c.right, p)
		} else if !c.left.merge {
			rx = xAt(c.left, p)
		}
		if rx > p.X {
			idx = i
			break
		}
	}
	t.spans = append(t.spans[:idx], append([]*span{s}, t.spans[idx:]...)...)
}

// vertexID returns the builder id for a sweep position, creating the
// vertex on first use.
func (t *FillTessellator) vertexID(p Point) (VertexID, bool) {
	if id, ok := t.ids[p]; ok {
		return id, true
	}
	id, err := t.builder.AddFillVertex(FillVertex{Position: p, Normal: t.normals[p]})
	if err != nil {
		t.err = err
		return 0, false
	}
	t.ids[p] = id
	return id, true
}

// epsArea is the signed-area threshold below which a triangle is
// dropped as degenerate.
const epsArea = 1e-10

// emitTriangle normalizes orientation and forwards one triangle to
// the builder. Degenerate triangles are dropped.
func (t *FillTessellator) emitTriangle(a, b, c monoVertex) {
	if t.err != nil {
		return
	}
	if a.id == b.id || b.id == c.id || a.id == c.id {
		return
	}
	cr := b.pos.Sub(a.pos).Cross(c.pos.Sub(a.pos))
	if math.Abs(cr) <= epsArea {
		return
	}
	if cr < 0 {
		b, c = c, b
	}
	t.builder.AddTriangle(a.id, b.id, c.id)
}

// checkIntersection tests a newly adjacent pair of active edges for a
// crossing strictly below the sweep position and splits both edges at
// the crossing, inserting an induced vertex event.
func (t *FillTessellator) checkIntersection(p Point, e1, e2 *activeEdge) {
	if e1.merge || e2.merge {
		return
	}
	q, ok := Line{P0: e1.upper, P1: e1.lower}.Intersection(Line{P0: e2.upper, P1: e2.lower})
	if !ok {
		return
	}
	// Ignore crossings at or above the current position and snapped
	// endpoint touches; event ordering resolves those.
	if !p.Before(q) {
		return
	}
	for _, end := range []Point{e1.upper, e1.lower, e2.upper, e2.lower} {
		if q.Approx(end, t.snap) {
			return
		}
	}
	Logger().Debug("fill: splitting intersecting edges", "x", q.X, "y", q.Y)
	heap.Push(&t.queue, sweepEvent{pos: q, edge: &fillEdge{upper: q, lower: e1.lower, winding: e1.winding}})
	heap.Push(&t.queue, sweepEvent{pos: q, edge: &fillEdge{upper: q, lower: e2.lower, winding: e2.winding}})
	e1.lower = q
	e2.lower = q
	heap.Push(&t.queue, sweepEvent{pos: q})
}
