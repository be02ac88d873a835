// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package essaysearch

import (
	"log/slog"
	"net/http"

	"github.com/poiesic/essaysearch/batch"
	"github.com/poiesic/essaysearch/config"
	"github.com/poiesic/essaysearch/metrics"
	"github.com/poiesic/essaysearch/page"
	"github.com/poiesic/essaysearch/server"
	"github.com/poiesic/essaysearch/service"
	"github.com/poiesic/essaysearch/service/remote"
	"github.com/poiesic/essaysearch/storage/badger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Client wires the search service, the optional response cache and metrics
// together, and hands out pages, batch runners and servers that share them.
type Client struct {
	cfg      *config.Config
	service  service.SearchService
	backend  *badger.Backend
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	logger     *slog.Logger
	httpClient *http.Client
	service    service.SearchService
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used to reach the search service.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithService replaces the HTTP search service, e.g. with a mock.
// The response cache still applies when configured.
func WithService(svc service.SearchService) ClientOption {
	return func(o *clientOptions) {
		o.service = svc
	}
}

// New creates a client from cfg. A nil cfg uses config.DefaultConfig().
func New(cfg *config.Config, opts ...ClientOption) (*Client, error) {
	options := &clientOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	svc := options.service
	if svc == nil {
		client, err := remote.NewClient(cfg,
			remote.WithHTTPClient(options.httpClient),
			remote.WithMetrics(m),
			remote.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		svc = client
	}

	c := &Client{
		cfg:      cfg,
		registry: registry,
		metrics:  m,
		logger:   logger,
	}

	if cfg.CacheTTL > 0 {
		cache, backend, err := badger.NewMemoryCache(logger)
		if err != nil {
			return nil, err
		}
		cached, err := service.NewCached(svc, cache, cfg.CacheTTL,
			service.WithCacheMetrics(m),
			service.WithCacheLogger(logger),
		)
		if err != nil {
			backend.Close()
			return nil, err
		}
		c.backend = backend
		svc = cached
	}
	c.service = svc

	return c, nil
}

// Close releases the response cache, if any.
func (c *Client) Close() error {
	if c.backend == nil {
		return nil
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing response cache", "err", err)
		return err
	}
	return nil
}

// Config returns the validated configuration.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Service returns the search service, cached when configured.
func (c *Client) Service() service.SearchService {
	return c.service
}

// Registry returns the Prometheus registry holding the client's metrics.
func (c *Client) Registry() *prometheus.Registry {
	return c.registry
}

// Metrics returns the client's collectors.
func (c *Client) Metrics() *metrics.Metrics {
	return c.metrics
}

// CacheEnabled reports whether responses are cached.
func (c *Client) CacheEnabled() bool {
	return c.backend != nil
}

// NewPage creates a search page wired to the client's logger and metrics.
// Later options override the defaults.
func (c *Client) NewPage(opts ...page.Option) (*page.Page, error) {
	return page.New(c.service, c.pageOptions(opts...)...)
}

// NewBatchRunner creates a batch runner over the client's service.
func (c *Client) NewBatchRunner(opts ...batch.Option) (*batch.Runner, error) {
	defaults := []batch.Option{batch.WithLogger(c.logger)}
	return batch.NewRunner(c.service, append(defaults, opts...)...)
}

// NewServer creates a web front end serving the client's pages and metrics.
func (c *Client) NewServer(opts ...server.Option) (*server.Server, error) {
	defaults := []server.Option{
		server.WithAddr(c.cfg.ListenAddr),
		server.WithGatherer(c.registry),
		server.WithLogger(c.logger),
		server.WithPageOptions(c.pageOptions()...),
	}
	return server.New(c.service, append(defaults, opts...)...)
}

func (c *Client) pageOptions(opts ...page.Option) []page.Option {
	defaults := []page.Option{
		page.WithLogger(c.logger),
		page.WithMetrics(c.metrics),
	}
	return append(defaults, opts...)
}
