package showroom

import "errors"

// Sentinel errors for the extraction stage. Callers match them with
// errors.Is; every return site wraps them with stage context.
var (
	// ErrNavigationNotFound indicates the navigation file is absent.
	ErrNavigationNotFound = errors.New("navigation file not found")

	// ErrEmptyNavigation indicates the navigation file parsed to zero
	// top-level page entries.
	ErrEmptyNavigation = errors.New("navigation contains no entries")

	// ErrSiteMetadataMissing indicates default-site.yml (or its site
	// title) is absent where the flow requires it.
	ErrSiteMetadataMissing = errors.New("site metadata missing")
)
