package tess

// FillRule selects which regions of a self-overlapping path count as
// inside.
type FillRule uint8

const (
	// FillRuleEvenOdd fills points crossed by an odd number of
	// contour edges.
	FillRuleEvenOdd FillRule = iota
	// FillRuleNonZero fills points whose accumulated contour winding
	// is non-zero.
	FillRuleNonZero
)

// LineCap is the shape at the open endpoints of a stroked sub-path.
type LineCap uint8

const (
	// LineCapButt terminates flush at the endpoint.
	LineCapButt LineCap = iota
	// LineCapSquare extends by half the line width along the tangent.
	LineCapSquare
	// LineCapRound closes with a half-circle fan.
	LineCapRound
)

// LineJoin is the shape of a stroke at an interior vertex.
type LineJoin uint8

const (
	// LineJoinMiter extends both offset edges to their intersection,
	// falling back to bevel beyond the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinMiterClip truncates the miter at the limit instead of
	// falling back.
	LineJoinMiterClip
	// LineJoinRound fills the corner with an arc fan.
	LineJoinRound
	// LineJoinBevel cuts the corner with a straight edge.
	LineJoinBevel
)

// DefaultTolerance is the default flattening error bound.
const DefaultTolerance = 0.1

// FillOptions configures the fill tessellator.
type FillOptions struct {
	// Tolerance is the maximum distance between a curve and its
	// polyline approximation. Must be positive.
	Tolerance float64

	// Rule selects the fill rule. Default: FillRuleEvenOdd.
	Rule FillRule
}

// DefaultFillOptions returns a FillOptions with default settings.
func DefaultFillOptions() FillOptions {
	return FillOptions{
		Tolerance: DefaultTolerance,
		Rule:      FillRuleEvenOdd,
	}
}

// WithTolerance returns a copy of the options with the given
// flattening tolerance.
func (o FillOptions) WithTolerance(tol float64) FillOptions {
	o.Tolerance = tol
	return o
}

// WithRule returns a copy of the options with the given fill rule.
func (o FillOptions) WithRule(rule FillRule) FillOptions {
	o.Rule = rule
	return o
}

// StrokeOptions configures the stroke tessellator.
type StrokeOptions struct {
	// Tolerance is the maximum distance between a curve and its
	// polyline approximation. Must be positive.
	Tolerance float64

	// LineWidth is the full width of the stroked band. Default: 1.0.
	LineWidth float64

	// StartCap and EndCap shape the open endpoints of non-closed
	// sub-paths. Default: LineCapButt.
	StartCap LineCap
	EndCap   LineCap

	// Join shapes interior vertices. Default: LineJoinMiter.
	Join LineJoin

	// MiterLimit bounds the miter length ratio before a miter join
	// degrades to bevel (or is clipped). Must be >= 1. Default: 4.0.
	MiterLimit float64

	// ApplyLineWidth controls whether emitted positions are offset by
	// half the line width. When false, positions stay on the path
	// skeleton and vertices carry normals for downstream extrusion:
	// unit length along straight runs, scaled by the miter factor at
	// miter joins. Default: true.
	ApplyLineWidth bool
}

// DefaultStrokeOptions returns a StrokeOptions with default settings.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		Tolerance:      DefaultTolerance,
		LineWidth:      1.0,
		StartCap:       LineCapButt,
		EndCap:         LineCapButt,
		Join:           LineJoinMiter,
		MiterLimit:     4.0,
		ApplyLineWidth: true,
	}
}

// WithTolerance returns a copy of the options with the given
// flattening tolerance.
func (o StrokeOptions) WithTolerance(tol float64) StrokeOptions {
	o.Tolerance = tol
	return o
}

// WithLineWidth returns a copy of the options with the given width.
func (o StrokeOptions) WithLineWidth(w float64) StrokeOptions {
	o.LineWidth = w
	return o
}

// WithCaps returns a copy of the options with both caps set.
func (o StrokeOptions) WithCaps(lineCap LineCap) StrokeOptions {
	o.StartCap = lineCap
	o.EndCap = lineCap
	return o
}

// WithStartCap returns a copy of the options with the start cap set.
func (o StrokeOptions) WithStartCap(lineCap LineCap) StrokeOptions {
	o.StartCap = lineCap
	return o
}

// WithEndCap returns a copy of the options with the end cap set.
func (o StrokeOptions) WithEndCap(lineCap LineCap) StrokeOptions {
	o.EndCap = lineCap
	return o
}

// WithJoin returns a copy of the options with the given join style.
func (o StrokeOptions) WithJoin(join LineJoin) StrokeOptions {
	o.Join = join
	return o
}

// WithMiterLimit returns a copy of the options with the given miter
// limit. A value of 1.0 effectively disables miter joins.
func (o StrokeOptions) WithMiterLimit(limit float64) StrokeOptions {
	o.MiterLimit = limit
	return o
}

// WithApplyLineWidth returns a copy of the options with the
// apply-line-width flag set.
func (o StrokeOptions) WithApplyLineWidth(apply bool) StrokeOptions {
	o.ApplyLineWidth = apply
	return o
}
