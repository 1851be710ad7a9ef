package criteria

import "errors"

// Sentinel kinds for criteria errors.
var (
	ErrInvalidCriteria = errors.New("invalid search criteria")
)
