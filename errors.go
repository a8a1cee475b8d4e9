package tess

import "errors"

// Error kinds surfaced by the tessellators. Callers test with
// errors.Is; the returned errors may wrap these with context.
var (
	// ErrInvalidInput reports a non-finite coordinate or a
	// structurally malformed path.
	ErrInvalidInput = errors.New("tess: invalid input")

	// ErrInvalidTolerance reports a non-positive or non-finite
	// flattening tolerance.
	ErrInvalidTolerance = errors.New("tess: invalid tolerance")

	// ErrTooManyVertices reports that the geometry builder rejected a
	// vertex because its index type is saturated.
	ErrTooManyVertices = errors.New("tess: too many vertices")

	// ErrInternal reports an invariant violation mid-sweep. It is
	// never raised on well-formed input under correct numeric
	// parameters; seeing it indicates a bug.
	ErrInternal = errors.New("tess: internal error")
)
