package server

import "errors"

var (
	// ErrServiceRequired is returned when a search service is not provided.
	ErrServiceRequired = errors.New("search service required")

	// ErrInvalidPagination is returned for malformed limit or offset parameters.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)
