package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/metrics"
	"github.com/poiesic/essaysearch/service"
	"github.com/poiesic/essaysearch/service/mock"
	"github.com/poiesic/essaysearch/storage"
	"github.com/poiesic/essaysearch/storage/badger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCached(t *testing.T, next service.SearchService, opts ...service.CachedOption) *service.Cached {
	t.Helper()
	cache, backend, err := badger.NewMemoryCache(nil)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	cached, err := service.NewCached(next, cache, time.Minute, opts...)
	require.NoError(t, err)
	return cached
}

func TestCached_HitAfterMiss(t *testing.T) {
	next := mock.NewMockService()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	cached := newCached(t, next, service.WithCacheMetrics(m), service.WithCacheLogger(nil))
	ctx := context.Background()

	first, err := cached.Search(ctx, core.NewSearchRequest("startups"))
	require.NoError(t, err)
	second, err := cached.Search(ctx, core.NewSearchRequest("  startups  "))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.CallCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(service.CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(service.CacheHit)))
}

func TestCached_DistinctQueries(t *testing.T) {
	next := mock.NewMockService()
	cached := newCached(t, next)
	ctx := context.Background()

	_, err := cached.Search(ctx, core.NewSearchRequest("startups"))
	require.NoError(t, err)
	resp, err := cached.Search(ctx, core.NewSearchRequest("growth"))
	require.NoError(t, err)

	assert.Equal(t, 2, next.CallCount())
	assert.Equal(t, "On growth", resp.Essays[0].Title)
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	next := mock.NewMockService()
	failures := 1
	next.SearchFunc = func(ctx context.Context, req core.SearchRequest) (*core.SearchResponse, error) {
		if failures > 0 {
			failures--
			return nil, core.ErrRequestFailed
		}
		return mock.DeterministicResponse(req), nil
	}
	cached := newCached(t, next)
	ctx := context.Background()

	_, err := cached.Search(ctx, core.NewSearchRequest("startups"))
	assert.ErrorIs(t, err, core.ErrRequestFailed)

	resp, err := cached.Search(ctx, core.NewSearchRequest("startups"))
	require.NoError(t, err)
	assert.Len(t, resp.Essays, 1)
	assert.Equal(t, 2, next.CallCount())
}

func TestCached_EmptyQuery(t *testing.T) {
	next := mock.NewMockService()
	cached := newCached(t, next)

	_, err := cached.Search(context.Background(), core.SearchRequest{Query: " "})
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
	assert.Zero(t, next.CallCount())
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, core.ID) (*core.SearchResponse, error) {
	return nil, errors.New("disk on fire")
}

func (brokenCache) Put(context.Context, core.ID, *core.SearchResponse, time.Duration) error {
	return errors.New("disk on fire")
}

func (brokenCache) Close() error { return nil }

var _ storage.ResponseCache = brokenCache{}

func TestCached_CacheFailuresFallThrough(t *testing.T) {
	next := mock.NewMockService()
	m := metrics.New(prometheus.NewRegistry())
	cached, err := service.NewCached(next, brokenCache{}, time.Minute, service.WithCacheMetrics(m))
	require.NoError(t, err)

	resp, err := cached.Search(context.Background(), core.NewSearchRequest("startups"))
	require.NoError(t, err)
	assert.Equal(t, "On startups", resp.Essays[0].Title)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(service.CacheError)))
}

func TestCached_ListEssaysPassesThrough(t *testing.T) {
	next := mock.NewMockService()
	cached := newCached(t, next)

	essays, err := cached.ListEssays(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Len(t, essays, 3)
	assert.Equal(t, 1, next.CallCount())
}

func TestNewCached_Validation(t *testing.T) {
	next := mock.NewMockService()

	_, err := service.NewCached(nil, brokenCache{}, time.Minute)
	assert.Error(t, err)
	_, err = service.NewCached(next, nil, time.Minute)
	assert.Error(t, err)
	_, err = service.NewCached(next, brokenCache{}, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidTTL)
}
