package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwa/backend/internal/ingest"
	"dwa/backend/internal/scheduler"
)

type countingRunner struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (r *countingRunner) Run(context.Context) (ingest.Summary, error) {
	r.calls.Add(1)
	time.Sleep(r.delay)
	return ingest.Summary{}, r.err
}

func TestStart_RunsOnStartup(t *testing.T) {
	r := &countingRunner{}
	s := scheduler.New(r, "0 * * * *", true)
	require.NoError(t, s.Start(context.Background()))

	assert.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()
}

func TestStart_NoStartupRun(t *testing.T) {
	r := &countingRunner{}
	s := scheduler.New(r, "0 * * * *", false)
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	assert.Zero(t, r.calls.Load())
}

func TestStart_InvalidSpec(t *testing.T) {
	s := scheduler.New(&countingRunner{}, "not a cron spec", false)
	assert.Error(t, s.Start(context.Background()))
}

func TestStop_WaitsForRunningJob(t *testing.T) {
	r := &countingRunner{delay: 100 * time.Millisecond}
	s := scheduler.New(r, "0 * * * *", true)
	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool { return r.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	start := time.Now()
	s.Stop()
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestRunErrorsAreSwallowed(t *testing.T) {
	r := &countingRunner{err: errors.New("upstream down")}
	s := scheduler.New(r, "@every 1s", true)
	require.NoError(t, s.Start(context.Background()))
	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)
	s.Stop()
}
