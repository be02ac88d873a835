package batch

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4, 1)

	tracker.Start()
	tracker.Done(false)
	tracker.Done(true)
	tracker.Done(false)
	tracker.Done(false)
	tracker.Finish()

	assert.Greater(t, tracker.Elapsed(), time.Duration(0))

	output := buf.String()
	assert.Contains(t, output, "1/4 (25.0%)")
	assert.Contains(t, output, "4/4 (100.0%) - 1 failed")
	assert.Contains(t, output, "\n", "finish should print newline")
}

func TestProgressTracker_Interval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 5)

	tracker.Start()
	for i := 0; i < 4; i++ {
		tracker.Done(false)
	}
	assert.Empty(t, buf.String(), "should not report before the interval")

	tracker.Done(false)
	assert.Contains(t, buf.String(), "5/10")
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1, 1)

	tracker.Start()
	tracker.Done(false)
	tracker.Done(false)
	tracker.Finish()

	assert.NotContains(t, buf.String(), "2/1")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 0)

	tracker.Done(false)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}
