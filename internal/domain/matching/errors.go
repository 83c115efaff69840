package matching

import "errors"

// Sentinel errors for candidate selection.
var (
	ErrInvalidLimit      = errors.New("invalid match limit")
	ErrInvalidFilter     = errors.New("invalid match filter")
	ErrMissingDependency = errors.New("selector dependency missing")
)
