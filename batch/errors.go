package batch

import "errors"

var (
	// ErrServiceRequired is returned when a search service is not provided.
	ErrServiceRequired = errors.New("search service required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
