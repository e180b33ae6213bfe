// Package scheduler wires up the cron job that periodically triggers an
// ingestion run.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"dwa/backend/internal/ingest"
)

// Runner performs one ingestion run.
type Runner interface {
	Run(ctx context.Context) (ingest.Summary, error)
}

// Scheduler wraps robfig/cron around a Runner.
type Scheduler struct {
	cron      *cron.Cron
	runner    Runner
	spec      string // cron spec, e.g. "0 * * * *"
	onStartup bool
	wg        sync.WaitGroup
}

// New creates a Scheduler firing on spec. When onStartup is set, Start also
// kicks off one run immediately.
func New(runner Runner, spec string, onStartup bool) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cron.DefaultLogger),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		runner:    runner,
		spec:      spec,
		onStartup: onStartup,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}

	s.cron.Start()
	slog.Info("scheduler started", "spec", s.spec)

	if s.onStartup {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runOnce(ctx)
		}()
	}
	return nil
}

// Stop halts the scheduler and waits for any in-flight run to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

// runOnce logs and discards the run's error; the next tick retries.
func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.Run(ctx); err != nil {
		slog.Error("scheduled ingestion failed", "error", err)
	}
}
