package tess

import (
	"math"
	"testing"
)

func collectEvents(p *Path) []PathEvent {
	var evs []PathEvent
	p.Events(func(ev PathEvent) { evs = append(evs, ev) })
	return evs
}

func TestPath_EventsStructure(t *testing.T) {
	p := BuildPath().
		MoveTo(0, 0).
		LineTo(1, 0).
		QuadTo(2, 0, 2, 1).
		CubicTo(2, 2, 1, 2, 0, 2).
		Close().
		Path()

	evs := collectEvents(p)
	wantKinds := []PathEventKind{EventBegin, EventLine, EventQuadratic, EventCubic, EventEnd}
	if len(evs) != len(wantKinds) {
		t.Fatalf("got %d events, want %d", len(evs), len(wantKinds))
	}
	for i, k := range wantKinds {
		if evs[i].Kind != k {
			t.Errorf("event %d kind = %v, want %v", i, evs[i].Kind, k)
		}
	}
	if !evs[len(evs)-1].Close {
		t.Error("closing subpath should end with Close=true")
	}
	if evs[len(evs)-1].First != Pt(0, 0) {
		t.Error("End event does not carry the Begin point")
	}
}

func TestPath_EventsOpenSubPath(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(5, 5).Path()
	evs := collectEvents(p)
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3", len(evs))
	}
	last := evs[len(evs)-1]
	if last.Kind != EventEnd || last.Close {
		t.Errorf("open subpath should end with Close=false, got %+v", last)
	}
}

func TestPath_EventsMultipleSubPaths(t *testing.T) {
	p := BuildPath().
		MoveTo(0, 0).LineTo(1, 0).
		MoveTo(10, 10).LineTo(11, 10).Close().
		Path()
	evs := collectEvents(p)

	begins, ends := 0, 0
	depth := 0
	for _, ev := range evs {
		switch ev.Kind {
		case EventBegin:
			begins++
			depth++
			if depth != 1 {
				t.Fatal("nested Begin without End")
			}
		case EventEnd:
			ends++
			depth--
		}
	}
	if begins != 2 || ends != 2 {
		t.Errorf("begins=%d ends=%d, want 2 and 2", begins, ends)
	}
}

func TestPath_SegmentBeforeMoveTo(t *testing.T) {
	// A LineTo with no preceding MoveTo gets an implicit Begin.
	p := NewPath()
	p.LineTo(3, 4)
	evs := collectEvents(p)
	if len(evs) != 3 || evs[0].Kind != EventBegin {
		t.Fatalf("expected implicit Begin, got %v events", len(evs))
	}
}

func TestPath_CheckFinite(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(1, 1).Path()
	if !p.checkFinite() {
		t.Error("finite path reported non-finite")
	}
	bad := NewPath()
	bad.MoveTo(0, 0)
	bad.LineTo(math.NaN(), 1)
	if bad.checkFinite() {
		t.Error("NaN path reported finite")
	}
}

func TestPathBuilder_Rect(t *testing.T) {
	p := BuildPath().Rect(1, 2, 3, 4).Path()
	evs := collectEvents(p)
	if evs[0].At != Pt(1, 2) {
		t.Errorf("rect starts at %v, want (1,2)", evs[0].At)
	}
	if !evs[len(evs)-1].Close {
		t.Error("rect should be closed")
	}
}

func TestPathBuilder_CircleIsClosedCurve(t *testing.T) {
	p := BuildPath().Circle(0, 0, 10).Path()
	evs := collectEvents(p)
	cubics := 0
	for _, ev := range evs {
		if ev.Kind == EventCubic {
			cubics++
		}
	}
	if cubics != 4 {
		t.Errorf("circle uses %d cubics, want 4", cubics)
	}
}

func TestPathBuilder_Polygon(t *testing.T) {
	p := BuildPath().Polygon(0, 0, 10, 6).Path()
	evs := collectEvents(p)
	lines := 0
	for _, ev := range evs {
		if ev.Kind == EventLine {
			lines++
		}
	}
	if lines != 5 {
		t.Errorf("hexagon emits %d explicit lines, want 5", lines)
	}
	// Vertices lie on the circumscribed circle.
	for _, ev := range evs {
		if ev.Kind == EventLine {
			if r := ev.To.Distance(Pt(0, 0)); math.Abs(r-10) > 1e-9 {
				t.Errorf("vertex %v has radius %v, want 10", ev.To, r)
			}
		}
	}
}

func TestPathBuilder_ArcTo(t *testing.T) {
	arc := Arc{
		Center:     Pt(0, 0),
		Radii:      V2(5, 5),
		StartAngle: 0,
		SweepAngle: Angle(math.Pi / 2),
	}
	p := BuildPath().ArcTo(arc).Path()
	evs := collectEvents(p)
	if evs[0].Kind != EventBegin || !pointsEqual(evs[0].At, Pt(5, 0), 1e-9) {
		t.Errorf("arc path should begin at the arc start, got %+v", evs[0])
	}
	quads := 0
	for _, ev := range evs {
		if ev.Kind == EventQuadratic {
			quads++
		}
	}
	if quads == 0 {
		t.Error("ArcTo emitted no quadratics")
	}
}
