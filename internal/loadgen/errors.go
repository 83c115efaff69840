package loadgen

import "errors"

// Sentinel errors for load generation and replay.
var (
	ErrInvalidConfig    = errors.New("invalid loadgen config")
	ErrUnhealthy        = errors.New("service unhealthy")
	ErrRequestFailed    = errors.New("selection request failed")
	ErrInvalidRanking   = errors.New("invalid ranking")
	ErrNondeterministic = errors.New("selection is not deterministic")
)
