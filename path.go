package tess

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new sub-path at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// PathEventKind identifies a path event.
type PathEventKind uint8

// Path event kinds, in sub-path order: one Begin, any number of
// segment events, one End.
const (
	EventBegin PathEventKind = iota
	EventLine
	EventQuadratic
	EventCubic
	EventEnd
)

// PathEvent is one event of the canonical path event stream consumed
// by the tessellators.
//
//   - EventBegin: At is the sub-path start.
//   - EventLine: To extends the sub-path.
//   - EventQuadratic: Ctrl1, To.
//   - EventCubic: Ctrl1, Ctrl2, To.
//   - EventEnd: Close reports whether an implicit segment back to the
//     Begin point is part of the contour. First carries that Begin
//     point so consumers need not track it.
type PathEvent struct {
	Kind  PathEventKind
	At    Point
	Ctrl1 Point
	Ctrl2 Point
	To    Point
	First Point
	Close bool
}

// Path represents a vector path: an ordered sequence of sub-paths made
// of line and curve segments.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new sub-path at a point.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	ctrl := Pt(cx, cy)
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
}

// Close closes the current subpath by drawing a line to the start
// point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// IsEmpty reports whether the path contains no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Events invokes fn for each event of the canonical event stream.
// Every sub-path is delimited by a Begin and an End event; an End
// with Close true implies a segment back to the Begin point. Segment
// events before any MoveTo get an implicit Begin at the origin.
func (p *Path) Events(fn func(PathEvent)) {
	var first, current Point
	open := false

	begin := func(at Point) {
		fn(PathEvent{Kind: EventBegin, At: at, First: at})
		first = at
		current = at
		open = true
	}
	end := func(closed bool) {
		if open {
			fn(PathEvent{Kind: EventEnd, At: current, First: first, Close: closed})
			open = false
		}
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			end(false)
			begin(e.Point)
		case LineTo:
			if !open {
				begin(current)
			}
			fn(PathEvent{Kind: EventLine, At: current, To: e.Point, First: first})
			current = e.Point
		case QuadTo:
			if !open {
				begin(current)
			}
			fn(PathEvent{Kind: EventQuadratic, At: current, Ctrl1: e.Control, To: e.Point, First: first})
			current = e.Point
		case CubicTo:
			if !open {
				begin(current)
			}
			fn(PathEvent{Kind: EventCubic, At: current, Ctrl1: e.Control1, Ctrl2: e.Control2, To: e.Point, First: first})
			current = e.Point
		case Close:
			if open {
				fn(PathEvent{Kind: EventEnd, At: current, First: first, Close: true})
				open = false
				current = first
			}
		}
	}
	end(false)
}

// checkFinite reports whether every coordinate in the path is finite.
func (p *Path) checkFinite() bool {
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if !e.Point.IsFinite() {
				return false
			}
		case LineTo:
			if !e.Point.IsFinite() {
				return false
			}
		case QuadTo:
			if !e.Control.IsFinite() || !e.Point.IsFinite() {
				return false
			}
		case CubicTo:
			if !e.Control1.IsFinite() || !e.Control2.IsFinite() || !e.Point.IsFinite() {
				return false
			}
		}
	}
	return true
}
