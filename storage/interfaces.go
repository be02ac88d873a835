package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/poiesic/essaysearch/core"
)

// ResponseCache stores Search Service replies with a time-to-live.
// Implementations must be thread-safe and support concurrent access.
type ResponseCache interface {
	// Get returns the cached response for key.
	// Returns ErrNotFound if the entry is missing or expired.
	Get(ctx context.Context, key core.ID) (*core.SearchResponse, error)

	// Put stores resp under key until ttl elapses.
	// Returns ErrInvalidTTL if ttl is not positive.
	Put(ctx context.Context, key core.ID, resp *core.SearchResponse, ttl time.Duration) error

	// Close releases resources held by the cache.
	Close() error
}

// CacheKey derives the cache key for a request from its query and limit.
func CacheKey(req core.SearchRequest) core.ID {
	return core.IDFromContent(req.Query + "\x00" + strconv.Itoa(req.Limit))
}
