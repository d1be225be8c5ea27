package recursive_model

import "errors"

// Geometry and lookup failures abort a run. Histogram range excursions are
// not errors: they are counted per order and reported with the histograms.
var (
	// ErrInvalidGeometry reports a non-positive room dimension, a scale
	// factor outside (0, 1], or a tessellation that cannot tile the walls.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrPositionNotOnGrid reports a transmitter or receiver position that
	// does not coincide with any generated cell centroid.
	ErrPositionNotOnGrid = errors.New("position not on tessellation grid")

	// ErrResourceExhausted reports a reflection order whose record arena
	// would exceed the configured memory budget.
	ErrResourceExhausted = errors.New("reflection order exceeds memory budget")
)
