package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when a run is not in the history index.
	ErrNotFound = errors.New("run not found")
)
