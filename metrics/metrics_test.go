package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/essaysearch/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeMalformed, Outcome(fmt.Errorf("%w: bad json", core.ErrMalformedResponse)))
	assert.Equal(t, OutcomeRequestFailed, Outcome(fmt.Errorf("%w: connection refused", core.ErrRequestFailed)))
	assert.Equal(t, OutcomeCanceled, Outcome(fmt.Errorf("%w: %w", core.ErrRequestFailed, context.DeadlineExceeded)))
	assert.Equal(t, OutcomeRequestFailed, Outcome(errors.New("boom")))
}

func TestRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordRequest("search", nil, 20*time.Millisecond)
	m.RecordRequest("search", core.ErrRequestFailed, time.Second)
	m.RecordCacheLookup("hit")
	m.RecordSubmission(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("search", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("search", OutcomeRequestFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeOK)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("search", nil, time.Millisecond)
		m.RecordCacheLookup("miss")
		m.RecordSubmission(errors.New("boom"))
	})
}
