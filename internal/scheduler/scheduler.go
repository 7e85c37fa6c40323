// Package scheduler reruns a job on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one scheduled run.
type Job func(ctx context.Context) error

type Scheduler struct {
	interval time.Duration
	job      Job
	logger   *slog.Logger
}

func New(interval time.Duration, job Job, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{interval: interval, job: job, logger: logger}
}

// Start runs the job immediately and then on every tick until ctx is done.
// A failed run is logged and does not stop the schedule.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.run(ctx, "initial")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx, "scheduled")
		}
	}
}

func (s *Scheduler) run(ctx context.Context, kind string) {
	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("job failed", "run", kind, "err", err)
		return
	}
	s.logger.Info("job finished", "run", kind, "took", time.Since(start).Round(time.Millisecond))
}
