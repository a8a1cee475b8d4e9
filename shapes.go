package tess

// Convenience tessellators for common shapes, built on the core fill
// and stroke tessellators.

// FillRectangle tessellates a filled axis-aligned rectangle.
func FillRectangle(r Rect, options FillOptions, t *FillTessellator, output FillGeometryBuilder) (Count, error) {
	path := BuildPath().Rect(r.Min.X, r.Min.Y, r.Width(), r.Height()).Path()
	return t.Tessellate(path, options, output)
}

// StrokeRectangle tessellates the outline of an axis-aligned
// rectangle.
func StrokeRectangle(r Rect, options StrokeOptions, t *StrokeTessellator, output StrokeGeometryBuilder) (Count, error) {
	path := BuildPath().Rect(r.Min.X, r.Min.Y, r.Width(), r.Height()).Path()
	return t.Tessellate(path, options, output)
}

// FillCircle tessellates a filled circle.
func FillCircle(center Point, radius float64, options FillOptions, t *FillTessellator, output FillGeometryBuilder) (Count, error) {
	path := BuildPath().Circle(center.X, center.Y, radius).Path()
	return t.Tessellate(path, options, output)
}

// StrokeCircle tessellates the outline of a circle.
func StrokeCircle(center Point, radius float64, options StrokeOptions, t *StrokeTessellator, output StrokeGeometryBuilder) (Count, error) {
	path := BuildPath().Circle(center.X, center.Y, radius).Path()
	return t.Tessellate(path, options, output)
}

// FillEllipse tessellates a filled axis-aligned ellipse.
func FillEllipse(center Point, rx, ry float64, options FillOptions, t *FillTessellator, output FillGeometryBuilder) (Count, error) {
	path := BuildPath().Ellipse(center.X, center.Y, rx, ry).Path()
	return t.Tessellate(path, options, output)
}

// FillPolyline tessellates the filled region bounded by a closed
// polyline.
func FillPolyline(points []Point, options FillOptions, t *FillTessellator, output FillGeometryBuilder) (Count, error) {
	path := BuildPath().Polyline(points...).Close().Path()
	return t.Tessellate(path, options, output)
}

// StrokePolyline tessellates a stroked polyline, closing it when
// closed is true.
func StrokePolyline(points []Point, closed bool, options StrokeOptions, t *StrokeTessellator, output StrokeGeometryBuilder) (Count, error) {
	b := BuildPath().Polyline(points...)
	if closed {
		b.Close()
	}
	return t.Tessellate(b.Path(), options, output)
}
