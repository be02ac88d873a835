package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/service"
)

const (
	defaultMaxAttempts = 1
	defaultRetryDelay  = 500 * time.Millisecond
)

// Outcome is the result of one query in a batch.
type Outcome struct {
	Index    int
	Query    string
	Response *core.SearchResponse
	Err      error
	Attempts int
	Duration time.Duration
}

// Runner sends queries to a search service on a worker pool.
type Runner struct {
	service     service.SearchService
	pool        *ants.Pool
	maxAttempts int
	retryDelay  time.Duration
	progress    io.Writer
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if r.pool != nil {
			r.pool.Release()
		}
		r.pool = pool
		return nil
	}
}

// WithMaxAttempts sets how many times a failed request is tried.
// Default is 1 (no retry).
func WithMaxAttempts(attempts int) Option {
	return func(r *Runner) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.maxAttempts = attempts
		return nil
	}
}

// WithRetryDelay sets the base delay for exponential backoff.
func WithRetryDelay(delay time.Duration) Option {
	return func(r *Runner) error {
		if delay < 0 {
			return fmt.Errorf("retry delay must not be negative: %s", delay)
		}
		r.retryDelay = delay
		return nil
	}
}

// WithProgress reports progress to w. Nil disables reporting.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) error {
		r.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a batch runner. Call Release when done.
func NewRunner(svc service.SearchService, opts ...Option) (*Runner, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		service:     svc,
		pool:        pool,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}
	r.logger = r.logger.With("component", "batch")

	return r, nil
}

// Run sends every query and returns one outcome per query in input order.
// Per-query failures are reported in the outcomes, not as an error.
func (r *Runner) Run(ctx context.Context, queries []string) []Outcome {
	outcomes := make([]Outcome, len(queries))

	var tracker *ProgressTracker
	if r.progress != nil {
		tracker = NewProgressTracker(r.progress, len(queries), 1)
		tracker.Start()
		defer tracker.Finish()
	}

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = r.runOne(ctx, i, query)
			if tracker != nil {
				tracker.Done(outcomes[i].Err != nil)
			}
		})
		if err != nil {
			wg.Done()
			outcomes[i] = Outcome{Index: i, Query: query, Err: fmt.Errorf("submitting query: %w", err)}
			if tracker != nil {
				tracker.Done(true)
			}
		}
	}
	wg.Wait()

	return outcomes
}

func (r *Runner) runOne(ctx context.Context, index int, query string) (outcome Outcome) {
	outcome = Outcome{Index: index, Query: query}
	start := time.Now()
	defer func() { outcome.Duration = time.Since(start) }()

	trimmed, err := core.ValidateQuery(query)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	err = RetryWithBackoff(ctx, func() error {
		outcome.Attempts++
		resp, err := r.service.Search(ctx, core.NewSearchRequest(trimmed))
		if err != nil {
			// A malformed reply will not improve on retry
			if errors.Is(err, core.ErrMalformedResponse) {
				return Permanent(err)
			}
			return err
		}
		outcome.Response = resp
		return nil
	}, r.maxAttempts, r.retryDelay)

	if err != nil {
		r.logger.Warn("query failed", "query", trimmed, "attempts", outcome.Attempts, "err", err)
		outcome.Err = err
	}
	return outcome
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
