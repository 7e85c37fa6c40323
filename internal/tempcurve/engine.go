package tempcurve

import (
	"log/slog"
	"time"
)

// DefaultTransitionDuration is how long a transition between two states lasts.
const DefaultTransitionDuration = 500 * time.Millisecond

// Phase is the state of the transition engine.
type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	}
	return "unknown"
}

// Snapshot is what the engine currently displays.
type Snapshot struct {
	State    DerivedState
	Progress float64
}

// ShowLabels reports whether the label overlay should be drawn. Labels of a
// half-blended state have no meaning, so they only appear once the transition
// has finished on a valid state.
func (s Snapshot) ShowLabels() bool {
	return s.Progress >= 1 && s.State.Valid
}

// Option configures an Engine.
type Option func(*Engine)

// WithDuration overrides the transition duration.
func WithDuration(d time.Duration) Option {
	return func(e *Engine) { e.duration = d }
}

// WithLogger sets the logger used for transition events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFrameHandler registers fn to receive every displayed snapshot.
func WithFrameHandler(fn func(Snapshot)) Option {
	return func(e *Engine) { e.onFrame = fn }
}

// Engine animates the displayed state towards the latest target. It owns the
// displayed snapshot; callers only hand it new targets.
//
// An Engine is not safe for concurrent use. Drive it from the goroutine that
// runs its Scheduler, e.g. by posting SetTarget calls through FrameLoop.Post.
type Engine struct {
	clock    Clock
	sched    Scheduler
	duration time.Duration
	logger   *slog.Logger
	onFrame  func(Snapshot)

	phase     Phase
	displayed Snapshot
	previous  DerivedState
	target    DerivedState
	start     time.Time

	// generation invalidates ticks scheduled for a superseded transition
	generation uint64
}

// NewEngine returns an idle engine displaying initial.
func NewEngine(initial DerivedState, clock Clock, sched Scheduler, opts ...Option) *Engine {
	e := &Engine{
		clock:     clock,
		sched:     sched,
		duration:  DefaultTransitionDuration,
		phase:     Idle,
		displayed: Snapshot{State: initial, Progress: 1},
		target:    initial,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	return e
}

// Phase returns the current engine phase.
func (e *Engine) Phase() Phase { return e.phase }

// Displayed returns the snapshot currently on screen.
func (e *Engine) Displayed() Snapshot { return e.displayed }

// Previous returns the state the running transition started from.
func (e *Engine) Previous() DerivedState { return e.previous }

// Target returns the state the engine is heading to.
func (e *Engine) Target() DerivedState { return e.target }

// SetTarget starts a transition towards s from whatever is displayed now. An
// invalid s is displayed immediately and ends any running transition.
func (e *Engine) SetTarget(s DerivedState) {
	e.generation++

	if !s.Valid {
		e.logger.Debug("invalid target, hiding chart", "was", e.phase)
		e.phase = Idle
		e.previous = e.displayed.State
		e.target = s
		e.display(Snapshot{State: s, Progress: 1})
		return
	}

	from := e.displayed.State
	if !from.Valid {
		// nothing meaningful to morph from
		from = s
	}
	if e.phase == Animating {
		e.logger.Debug("transition superseded", "progress", e.displayed.Progress)
	}

	e.previous = from
	e.target = s
	e.start = e.clock.Now()
	e.phase = Animating
	e.logger.Debug("transition started",
		"duration", e.duration,
		"min", s.MinTemperature,
		"max", s.MaxTemperature,
	)
	e.scheduleTick()
}

func (e *Engine) scheduleTick() {
	gen := e.generation
	e.sched.Schedule(func() { e.tick(gen) })
}

func (e *Engine) tick(gen uint64) {
	if gen != e.generation || e.phase != Animating {
		return
	}

	p := e.progress()
	e.display(Snapshot{State: Blend(e.previous, e.target, p), Progress: p})

	if p >= 1 {
		e.phase = Idle
		e.logger.Debug("transition finished")
		return
	}
	e.scheduleTick()
}

func (e *Engine) progress() float64 {
	if e.duration <= 0 {
		return 1
	}
	p := float64(e.clock.Now().Sub(e.start)) / float64(e.duration)
	return min(max(p, 0), 1)
}

func (e *Engine) display(s Snapshot) {
	e.displayed = s
	if e.onFrame != nil {
		e.onFrame(s)
	}
}
