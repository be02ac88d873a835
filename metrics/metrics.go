// Package metrics provides Prometheus metrics for essaysearch.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/poiesic/essaysearch/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "essaysearch"

// Outcome labels
const (
	OutcomeOK            = "ok"
	OutcomeRequestFailed = "request_failed"
	OutcomeMalformed     = "malformed"
	OutcomeCanceled      = "canceled"
)

// Metrics holds the collectors for one client instance.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// RequestsTotal counts Search Service calls by endpoint and outcome.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures Search Service call latency.
	RequestDuration *prometheus.HistogramVec

	// CacheLookups counts response cache lookups by result (hit, miss, error).
	CacheLookups *prometheus.CounterVec

	// Submissions counts page submissions by outcome.
	Submissions *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "service_requests_total",
				Help:      "Total number of Search Service requests",
			},
			[]string{"endpoint", "outcome"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "service_request_duration_seconds",
				Help:      "Duration of Search Service requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of response cache lookups",
			},
			[]string{"result"},
		),
		Submissions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_submissions_total",
				Help:      "Total number of search page submissions",
			},
			[]string{"outcome"},
		),
	}
}

// RecordRequest records a finished Search Service call.
func (m *Metrics) RecordRequest(endpoint string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, Outcome(err)).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit, miss or error.
func (m *Metrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordSubmission records the outcome of a page submission.
func (m *Metrics) RecordSubmission(err error) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(Outcome(err)).Inc()
}

// Outcome classifies an error into an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, core.ErrMalformedResponse):
		return OutcomeMalformed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeRequestFailed
	}
}
