package service

import (
	"context"

	"github.com/poiesic/essaysearch/core"
)

// SearchService is the remote semantic search backend.
// Implementations must be thread-safe for concurrent use.
type SearchService interface {
	// Search sends a query and returns the validated response.
	// Failures wrap core.ErrRequestFailed or core.ErrMalformedResponse.
	Search(ctx context.Context, req core.SearchRequest) (*core.SearchResponse, error)

	// ListEssays returns a page of the essay catalogue, ordered by the service.
	ListEssays(ctx context.Context, limit, offset int) ([]core.EssaySummary, error)
}
