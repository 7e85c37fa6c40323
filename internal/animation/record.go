// Package animation records transitions offline, frame by frame.
package animation

import (
	"errors"
	"log/slog"
	"time"

	"github.com/christophergentle/tempcurve/internal/tempcurve"
)

// ErrBadInterval is returned for a non-positive frame interval.
var ErrBadInterval = errors.New("frame interval must be positive")

// Options controls a recording.
type Options struct {
	Duration time.Duration
	Interval time.Duration
	Logger   *slog.Logger
}

// Record runs a transition from one state to another on a manual clock and
// returns every snapshot the engine displayed, in order. The clock advances
// by Interval between frames, so the result has about Duration/Interval+1
// entries ending on the target.
func Record(from, to tempcurve.DerivedState, opts Options) ([]tempcurve.Snapshot, error) {
	if opts.Interval <= 0 {
		return nil, ErrBadInterval
	}

	clock := tempcurve.NewManualClock(time.Unix(0, 0))
	sched := &tempcurve.ManualScheduler{}

	var snapshots []tempcurve.Snapshot
	engineOpts := []tempcurve.Option{
		tempcurve.WithDuration(opts.Duration),
		tempcurve.WithFrameHandler(func(s tempcurve.Snapshot) {
			snapshots = append(snapshots, s)
		}),
	}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, tempcurve.WithLogger(opts.Logger))
	}

	engine := tempcurve.NewEngine(from, clock, sched, engineOpts...)
	engine.SetTarget(to)

	limit := int(opts.Duration/opts.Interval) + 2
	for range limit {
		sched.Step()
		if engine.Phase() == tempcurve.Idle {
			break
		}
		clock.Advance(opts.Interval)
	}
	return snapshots, nil
}

// Frames builds the geometry for each snapshot.
func Frames(snapshots []tempcurve.Snapshot, opts tempcurve.FrameOptions) []tempcurve.Frame {
	frames := make([]tempcurve.Frame, len(snapshots))
	for i, s := range snapshots {
		frames[i] = tempcurve.BuildFrame(s, opts)
	}
	return frames
}
