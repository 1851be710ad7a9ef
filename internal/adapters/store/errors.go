package store

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrNotFound signals an unknown profile identifier.
	ErrNotFound = errors.New("profile not found")

	// ErrUnavailable signals an infrastructure-level outage; callers may
	// retry with backoff. The engine itself never retries.
	ErrUnavailable = errors.New("profile store unavailable")
)
