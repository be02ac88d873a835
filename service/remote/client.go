package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/essaysearch/config"
	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/metrics"
	"github.com/poiesic/essaysearch/service"
)

const (
	searchPath = "/search"
	essaysPath = "/essays"

	// maxResponseBytes caps how much of a reply is read.
	maxResponseBytes = 10 << 20
	// maxErrorBodyBytes caps how much of a failed reply is logged.
	maxErrorBodyBytes = 512
)

// Client implements service.SearchService over JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

var _ service.SearchService = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
// Default is a client with no overall timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithMetrics records every request into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "search-client")
	}
}

// NewClient creates a client for the Search Service described by cfg.
// The config is validated and normalized before use.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    cfg.ServiceURL,
		httpClient: &http.Client{},
		timeout:    cfg.RequestTimeout,
		logger:     slog.Default().With("component", "search-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized Search Service URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// wireResponse distinguishes absent fields from zero values.
type wireResponse struct {
	Essays   *[]core.SearchResult `json:"essays"`
	Insights *string              `json:"insights"`
}

// Search posts the query to /search and returns the validated response.
func (c *Client) Search(ctx context.Context, req core.SearchRequest) (*core.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, core.ErrEmptyQuery
	}
	if req.Limit <= 0 {
		req.Limit = core.DefaultLimit
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRequestFailed, err)
	}

	start := time.Now()
	resp, err := c.search(ctx, body)
	c.metrics.RecordRequest("search", err, time.Since(start))
	return resp, err
}

func (c *Client) search(ctx context.Context, body []byte) (*core.SearchResponse, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("sending search request", "url", httpReq.URL.String(), "bytes", len(body))

	var wire wireResponse
	if err := c.do(httpReq, &wire); err != nil {
		return nil, err
	}

	if wire.Essays == nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedResponse, core.ErrMissingEssays)
	}
	if wire.Insights == nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedResponse, core.ErrMissingInsights)
	}

	result := &core.SearchResponse{
		Essays:   *wire.Essays,
		Insights: *wire.Insights,
	}
	if err := core.ValidateSearchResponse(result); err != nil {
		return nil, err
	}

	c.logger.Debug("search request succeeded", "essays", len(result.Essays))
	return result, nil
}

// ListEssays fetches a page of the essay catalogue from /essays.
func (c *Client) ListEssays(ctx context.Context, limit, offset int) ([]core.EssaySummary, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit=%d offset=%d", ErrInvalidPagination, limit, offset)
	}

	start := time.Now()
	essays, err := c.listEssays(ctx, limit, offset)
	c.metrics.RecordRequest("essays", err, time.Since(start))
	return essays, err
}

func (c *Client) listEssays(ctx context.Context, limit, offset int) ([]core.EssaySummary, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+essaysPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrRequestFailed, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	var essays []core.EssaySummary
	if err := c.do(httpReq, &essays); err != nil {
		return nil, err
	}
	if essays == nil {
		essays = []core.EssaySummary{}
	}
	return essays, nil
}

// do executes the request and decodes a 2xx JSON body into out.
func (c *Client) do(httpReq *http.Request, out any) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.Warn("search service returned error status",
			"url", httpReq.URL.Path,
			"status", resp.StatusCode,
			"body", string(snippet))
		return fmt.Errorf("%w: %s %s returned status %d", core.ErrRequestFailed, httpReq.Method, httpReq.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		// A cancelled context surfaces as a read error mid-body
		if ctxErr := httpReq.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", core.ErrRequestFailed, ctxErr)
		}
		return fmt.Errorf("%w: %w", core.ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}
