package model

import "errors"

// Sentinel errors shared by the domain packages.
var (
	ErrUnknownAction   = errors.New("unknown swipe action")
	ErrScoreOutOfRange = errors.New("category score out of range")
)
