package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/metrics"
	"github.com/poiesic/essaysearch/storage"
)

// Cache lookup results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Cached decorates a SearchService with a TTL response cache.
// Only successful Search replies are cached; ListEssays always passes through.
// Cache failures are logged and never surface to the caller.
type Cached struct {
	next    SearchService
	cache   storage.ResponseCache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ SearchService = (*Cached)(nil)

// CachedOption configures a Cached service.
type CachedOption func(*Cached)

// WithCacheMetrics records cache hits and misses.
func WithCacheMetrics(m *metrics.Metrics) CachedOption {
	return func(c *Cached) {
		c.metrics = m
	}
}

// WithCacheLogger sets the logger. A nil logger falls back to slog.Default().
func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *Cached) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "response-cache")
	}
}

// NewCached wraps next with cache. ttl must be positive.
func NewCached(next SearchService, cache storage.ResponseCache, ttl time.Duration, opts ...CachedOption) (*Cached, error) {
	if next == nil {
		return nil, errors.New("search service is required")
	}
	if cache == nil {
		return nil, errors.New("response cache is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: %s", storage.ErrInvalidTTL, ttl)
	}

	c := &Cached{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: slog.Default().With("component", "response-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search answers from the cache when possible and stores fresh replies.
func (c *Cached) Search(ctx context.Context, req core.SearchRequest) (*core.SearchResponse, error) {
	query, err := core.ValidateQuery(req.Query)
	if err != nil {
		return nil, err
	}
	req.Query = query
	if req.Limit <= 0 {
		req.Limit = core.DefaultLimit
	}

	key := storage.CacheKey(req)
	resp, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		c.metrics.RecordCacheLookup(CacheHit)
		c.logger.Debug("cache hit", "query", req.Query)
		return resp, nil
	case errors.Is(err, storage.ErrNotFound):
		c.metrics.RecordCacheLookup(CacheMiss)
	default:
		c.metrics.RecordCacheLookup(CacheError)
		c.logger.Warn("cache lookup failed", "query", req.Query, "err", err)
	}

	resp, err = c.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, resp, c.ttl); err != nil {
		c.logger.Warn("cache store failed", "query", req.Query, "err", err)
	}
	return resp, nil
}

// ListEssays delegates to the wrapped service.
func (c *Cached) ListEssays(ctx context.Context, limit, offset int) ([]core.EssaySummary, error) {
	return c.next.ListEssays(ctx, limit, offset)
}
