package taxonomy

import "errors"

// ErrUnknownGenre is returned when a genre reference cannot be resolved to an id.
var ErrUnknownGenre = errors.New("unknown genre")
