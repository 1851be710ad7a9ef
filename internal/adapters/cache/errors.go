package cache

import "errors"

// Sentinel kinds for cache errors. Callers treat any cache error as a
// miss; these exist for logging and metrics, not control flow.
var (
	ErrBackend = errors.New("cache backend failure")
)
