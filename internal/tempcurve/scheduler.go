package tempcurve

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler runs callbacks on the next frame.
type Scheduler interface {
	Schedule(fn func())
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a clock that only moves when told to.
type ManualClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewManualClock returns a clock stopped at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{t: t}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// ManualScheduler queues callbacks until Step is called. It is meant for tests
// and offline rendering where frames are produced on demand.
type ManualScheduler struct {
	queue []func()
}

func (s *ManualScheduler) Schedule(fn func()) {
	s.queue = append(s.queue, fn)
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *ManualScheduler) Pending() int {
	return len(s.queue)
}

// Step runs the callbacks queued before the call, in order. Callbacks they
// schedule wait for the following Step. It returns how many callbacks ran.
func (s *ManualScheduler) Step() int {
	batch := s.queue
	s.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// FrameLoop is a cooperative scheduler driven by a ticker. Every callback runs
// on the goroutine executing Run, one frame's batch per tick, in the order it
// was scheduled. Work from other goroutines enters through Post and runs
// between frames.
type FrameLoop struct {
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	queue []func()

	posts chan func()
}

// NewFrameLoop returns a loop ticking every interval.
func NewFrameLoop(interval time.Duration, logger *slog.Logger) *FrameLoop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FrameLoop{
		interval: interval,
		logger:   logger,
		posts:    make(chan func()),
	}
}

// Schedule queues fn for the next frame. It is safe to call from any goroutine.
func (l *FrameLoop) Schedule(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Post hands fn to the loop goroutine and blocks until the loop accepts it or
// ctx is done.
func (l *FrameLoop) Post(ctx context.Context, fn func()) error {
	select {
	case l.posts <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes frames until ctx is cancelled.
func (l *FrameLoop) Run(ctx context.Context) error {
	t := time.NewTicker(l.interval)
	defer t.Stop()

	l.logger.Debug("frame loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("frame loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case <-t.C:
			l.mu.Lock()
			batch := l.queue
			l.queue = nil
			l.mu.Unlock()
			for _, fn := range batch {
				fn()
			}
		}
	}
}
