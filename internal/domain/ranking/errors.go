package ranking

import "errors"

// Sentinel errors for the ranking board.
var (
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrDuplicate    = errors.New("candidate already ranked")
	ErrMissingID    = errors.New("match has no candidate id")
)
