package clustering

import "errors"

var (
	// ErrNotFitted is returned when Transform or Predict is called before a
	// successful Fit.
	ErrNotFitted = errors.New("model not fitted")
	// ErrDimensionMismatch is returned when an input's feature count differs
	// from the fitted schema. An integration bug, not a user-input condition.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	// ErrEmptyMatrix is returned when fitting is attempted on a degenerate
	// (zero rows or zero columns) matrix.
	ErrEmptyMatrix = errors.New("empty feature matrix")
	// ErrInsufficientSamples is returned when there are fewer samples than
	// clusters requested.
	ErrInsufficientSamples = errors.New("fewer samples than clusters")
)
