package source

import "errors"

// Sentinel errors for source resolution. Callers match them with
// errors.Is; every return site wraps them with the location involved.
var (
	// ErrSourceUnavailable indicates the source could not be reached or
	// read: network failure, auth failure, or a missing repository.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrInvalidRevision indicates the requested ref does not exist on
	// the remote.
	ErrInvalidRevision = errors.New("invalid revision")

	// ErrNotACheckout indicates a local directory lacks the .git marker
	// expected of a cloned lab repository.
	ErrNotACheckout = errors.New("not a git checkout")
)
