package tess

import "math"

// Curve flattening: adaptive subdivision of curve segments into
// polylines within a tolerance bound. Both tessellators share this
// substrate. Flattening is push-style: each point is handed to a
// callback in order, keeping the hot path allocation-free.

// minTolerance is the clamp applied to negative tolerances.
const minTolerance = 1e-4

// checkTolerance validates a flattening tolerance: zero and non-finite
// values are rejected, negative values clamp to a small positive
// bound.
func checkTolerance(tol float64) (float64, error) {
	if tol == 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return 0, ErrInvalidTolerance
	}
	if tol < 0 {
		return minTolerance, nil
	}
	return tol, nil
}

// FlattenQuad emits the polyline approximation of q within tolerance.
// The starting point q.P0 is not emitted; the final emitted point is
// q.P2. Intermediate points lie on the curve strictly between the
// endpoints in parameter space.
func FlattenQuad(q QuadBez, tolerance float64, emit func(Point)) {
	rem := q
	for {
		t := rem.FlatteningStep(tolerance)
		// The closed-form step is an estimate. Cap it so the piece
		// stays within tolerance of its chord: that distance is at
		// most t^2 * |P0 - 2*P1 + P2| / 4.
		if dd := rem.P0.Sub(rem.P1).Add(rem.P2.Sub(rem.P1)).Length(); dd > 0 {
			t = math.Min(t, 2*math.Sqrt(tolerance/dd))
		}
		if t >= 1.0 {
			emit(rem.P2)
			return
		}
		rem = rem.After(t)
		emit(rem.P0)
	}
}

// FlattenCubic emits the polyline approximation of c within tolerance.
// The starting point c.P0 is not emitted; the final emitted point is
// c.P3.
//
// The curve is first partitioned at its inflection points; within the
// flat neighborhood of each inflection a single segment is used where
// the control points show it stays within tolerance, and each remaining
// piece is stepped with the closed-form estimator of the quadratic on
// its tangent polygon, capped by a chord-distance bound.
func FlattenCubic(c CubicBez, tolerance float64, emit func(Point)) {
	inflections := c.InflectionPoints()
	if len(inflections) == 0 {
		flattenCubicNoInflection(c, tolerance, emit)
		return
	}

	t0 := 0.0
	for _, t := range inflections {
		lo, hi := inflectionApproxRange(c, t, tolerance)
		if lo > t0 {
			flattenCubicNoInflection(c.Subsegment(t0, lo), tolerance, emit)
			t0 = lo
		}
		if hi > t0 {
			// Inside the inflection's approximation interval a single
			// line segment stays within tolerance, provided the piece
			// cannot stray further from its chord (3/4 of its larger
			// control second difference bounds that distance); otherwise
			// the piece is left to the stepping flattener.
			sub := c.Subsegment(t0, hi)
			if 0.75*math.Max(sub.P0.Sub(sub.P1).Add(sub.P2.Sub(sub.P1)).Length(),
				sub.P1.Sub(sub.P2).Add(sub.P3.Sub(sub.P2)).Length()) > tolerance {
				continue
			}
			if hi < 1 {
				emit(c.Eval(hi))
			}
			t0 = hi
		}
	}
	if t0 < 1 {
		flattenCubicNoInflection(c.Subsegment(t0, 1), tolerance, emit)
	} else {
		emit(c.P3)
	}
}

// inflectionApproxRange returns the parameter interval around an
// inflection at t inside which the curve deviates from its tangent by
// less than tolerance.
func inflectionApproxRange(c CubicBez, t, tolerance float64) (float64, float64) {
	// Near an inflection the deviation grows as |d3|/6 * s^3 where s
	// is the parameter distance and d3 the third-derivative
	// magnitude, so the half-width is (6*tol/|d3|)^(1/3).
	d3 := c.P3.Sub(c.P0).Add(c.P1.Sub(c.P2).Mul(3)).Mul(6)
	mag := d3.Length()
	if mag < 1e-12 {
		return 0, 1
	}
	half := math.Cbrt(6 * tolerance / mag)
	lo := math.Max(0, t-half)
	hi := math.Min(1, t+half)
	return lo, hi
}

// flattenCubicNoInflection flattens an inflection-free cubic by
// stepping with the quadratic estimator applied to the current
// tangent polygon.
func flattenCubicNoInflection(c CubicBez, tolerance float64, emit func(Point)) {
	rem := c
	for {
		q := QuadBez{P0: rem.P0, P1: rem.P1, P2: rem.P3}
		t := q.FlatteningStep(tolerance)
		// Cap the estimate so the piece stays within tolerance of its
		// chord: that distance is at most 3/4 * t^2 times the larger
		// second difference of the control points.
		dd := math.Max(rem.P0.Sub(rem.P1).Add(rem.P2.Sub(rem.P1)).Length(),
			rem.P1.Sub(rem.P2).Add(rem.P3.Sub(rem.P2)).Length())
		if dd > 0 {
			t = math.Min(t, math.Sqrt(4*tolerance/(3*dd)))
		}
		if t >= 1.0 {
			emit(rem.P3)
			return
		}
		_, rem = rem.Split(t)
		emit(rem.P0)
	}
}

// FlattenArc emits the polyline approximation of the arc within
// tolerance by converting it to quadratics of bounded angular span
// and flattening each. The arc is first cut into equal pieces, few
// enough that each piece's quadratics stay within half the tolerance
// of the arc; the quadratics are flattened with the other half. The
// arc's start point is not emitted.
func FlattenArc(a Arc, tolerance float64, emit func(Point)) {
	// A quad over a circular span of 2h deviates from the circle by at
	// most r*(1-cos h)^2/(2*cos h). Halve the pieces until that stays
	// within half the tolerance; the other half goes to the quads.
	r := math.Max(math.Abs(a.Radii.X), math.Abs(a.Radii.Y))
	n := 1
	for ; n < 1<<16; n *= 2 {
		h := math.Min(math.Abs(a.SweepAngle.Radians())/float64(2*n), math.Pi/4)
		if c := math.Cos(h); r*(1-c)*(1-c)/(2*c) <= tolerance/2 {
			break
		}
	}
	step := a.SweepAngle / Angle(n)
	for i := 0; i < n; i++ {
		sub := a
		sub.StartAngle = a.StartAngle + Angle(i)*step
		sub.SweepAngle = step
		for _, q := range sub.ToQuads() {
			FlattenQuad(q, tolerance/2, emit)
		}
	}
}

// flattenEvent dispatches one path segment event to the flattener.
// Line events pass through unchanged, so flattening a polyline is the
// identity.
func flattenEvent(ev PathEvent, tolerance float64, emit func(Point)) {
	switch ev.Kind {
	case EventLine:
		emit(ev.To)
	case EventQuadratic:
		FlattenQuad(QuadBez{P0: ev.At, P1: ev.Ctrl1, P2: ev.To}, tolerance, emit)
	case EventCubic:
		FlattenCubic(CubicBez{P0: ev.At, P1: ev.Ctrl1, P2: ev.Ctrl2, P3: ev.To}, tolerance, emit)
	}
}
