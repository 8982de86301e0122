package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := NewScheduler(logging.NewLogger(&utils.Config{}))
	t.Cleanup(s.Stop)
	return s
}

func TestAddRecurringRejectsDuplicateID(t *testing.T) {
	s := newTestScheduler(t)

	noop := func(context.Context) error { return nil }
	require.NoError(t, s.AddRecurring("prune", "prune", time.Hour, noop))
	require.Error(t, s.AddRecurring("prune", "prune again", time.Hour, noop))
}

func TestAddRecurringRejectsZeroInterval(t *testing.T) {
	s := newTestScheduler(t)

	require.Error(t, s.AddRecurring("once", "once", 0, func(context.Context) error { return nil }))
}

func TestRunNow(t *testing.T) {
	s := newTestScheduler(t)

	var runs atomic.Int32
	require.NoError(t, s.AddRecurring("count", "count", time.Hour, func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	require.NoError(t, s.RunNow("count"))
	require.NoError(t, s.RunNow("count"))
	require.Equal(t, int32(2), runs.Load())

	require.Error(t, s.RunNow("missing"))
}

func TestRunNowSurvivesJobError(t *testing.T) {
	s := newTestScheduler(t)

	require.NoError(t, s.AddRecurring("flaky", "flaky", time.Hour, func(context.Context) error {
		return errors.New("boom")
	}))
	require.NoError(t, s.RunNow("flaky"))
}
