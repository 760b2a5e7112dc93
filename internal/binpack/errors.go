package binpack

import "errors"

var (
	// ErrInvalidInstance wraps every structural problem reported by Instance.Validate.
	ErrInvalidInstance = errors.New("binpack: invalid instance")

	// ErrLengthMismatch is returned by Crossover when the parents differ in length.
	ErrLengthMismatch = errors.New("binpack: solution length mismatch")

	// ErrEmptyNeighborhood means no swap exists (fewer than two non-empty bins).
	// Strategies treat it as natural termination, never as a failure.
	ErrEmptyNeighborhood = errors.New("binpack: empty swap neighborhood")

	ErrInvalidSolution = errors.New("binpack: invalid solution")
)
