package page

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/metrics"
	"github.com/poiesic/essaysearch/service"
)

// KeyEnter is the key name that submits the query.
const KeyEnter = "Enter"

// Page is the search page state: the typed query, the last successful
// response and whether a request is in flight.
// A Page is safe for concurrent use; the lock is never held during a request.
type Page struct {
	service service.SearchService
	monitor SubmitMonitor
	metrics *metrics.Metrics
	logger  *slog.Logger
	session string

	mu      sync.Mutex
	query   string
	results *core.SearchResponse
	loading bool
}

// Option configures a Page.
type Option func(*Page) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithMonitor sets the submission monitor. A nil monitor disables monitoring.
func WithMonitor(monitor SubmitMonitor) Option {
	return func(p *Page) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// WithMetrics records submission outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Page) error {
		p.metrics = m
		return nil
	}
}

// New creates an empty page backed by svc.
func New(svc service.SearchService, opts ...Option) (*Page, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}

	p := &Page{
		service: svc,
		monitor: &noopMonitor{},
		logger:  slog.Default(),
		session: uuid.NewString(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "search-page", "session", p.session)

	return p, nil
}

// Session returns the page's session id.
func (p *Page) Session() string {
	return p.session
}

// SetQuery replaces the typed query.
func (p *Page) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = query
}

// Query returns the typed query as entered.
func (p *Page) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Results returns the last successful response, or nil if none arrived.
func (p *Page) Results() *core.SearchResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Loading reports whether a request is in flight.
func (p *Page) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Activate presses the search button.
func (p *Page) Activate(ctx context.Context) error {
	return p.Submit(ctx)
}

// HandleKey processes a key press in the query box. Only Enter submits;
// other keys are ignored.
func (p *Page) HandleKey(ctx context.Context, key string) error {
	if key != KeyEnter {
		return nil
	}
	return p.Submit(ctx)
}

// Submit sends the trimmed query to the search service with the default
// limit and stores the response.
//
// Returns ErrEmptyQuery or ErrSubmitInFlight when the submission is
// rejected; state is unchanged and no request is made. A failed request
// is logged and reported to the monitor but not returned: prior results
// stay in place and Submit returns nil.
func (p *Page) Submit(ctx context.Context) error {
	p.mu.Lock()
	query, err := core.ValidateQuery(p.query)
	if err == nil && p.loading {
		err = ErrSubmitInFlight
	}
	if err != nil {
		raw := p.query
		p.mu.Unlock()
		p.logger.Debug("submission rejected", "query", raw, "err", err)
		p.monitor.Rejected(raw, err)
		return err
	}
	p.loading = true
	p.mu.Unlock()

	p.monitor.Start(query)
	defer p.monitor.Finish(query)

	resp, err := p.search(ctx, query)

	p.mu.Lock()
	if err == nil {
		p.results = resp
	}
	p.loading = false
	p.mu.Unlock()

	p.metrics.RecordSubmission(err)
	if err != nil {
		p.logger.Error("search request failed", "query", query, "err", err)
		p.monitor.Failed(query, err)
		return nil
	}

	p.logger.Debug("search succeeded", "query", query, "essays", len(resp.Essays))
	p.monitor.Succeeded(query, resp)
	return nil
}

// search calls the service, converting panics and nil replies into errors
// so loading is always cleared.
func (p *Page) search(ctx context.Context, query string) (resp *core.SearchResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("%w: %v", core.ErrRequestFailed, r)
		}
	}()

	resp, err = p.service.Search(ctx, core.NewSearchRequest(query))
	if err == nil && resp == nil {
		err = fmt.Errorf("%w: response is nil", core.ErrMalformedResponse)
	}
	return resp, err
}

// View returns a render-ready snapshot of the page.
func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return NewView(p.query, p.loading, p.results)
}
