package worker

import "errors"

// Sentinel errors for dispatch.
var (
	ErrInvalidJob = errors.New("invalid scoring job")
	ErrPanicked   = errors.New("scoring handler panicked")
)
