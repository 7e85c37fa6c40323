package tempcurve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineHarness struct {
	clock  *ManualClock
	sched  *ManualScheduler
	engine *Engine
	frames []Snapshot
}

func newHarness(initial DerivedState) *engineHarness {
	h := &engineHarness{
		clock: NewManualClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)),
		sched: &ManualScheduler{},
	}
	h.engine = NewEngine(initial, h.clock, h.sched, WithFrameHandler(func(s Snapshot) {
		h.frames = append(h.frames, s)
	}))
	return h
}

// frame advances the clock by d and runs one frame.
func (h *engineHarness) frame(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Step()
}

func TestEngineStartsIdle(t *testing.T) {
	a, _ := blendPair()
	h := newHarness(a)

	assert.Equal(t, Idle, h.engine.Phase())
	assert.Equal(t, Snapshot{State: a, Progress: 1}, h.engine.Displayed())
	assert.True(t, h.engine.Displayed().ShowLabels())
	assert.Zero(t, h.sched.Pending())
}

func TestEngineAnimatesToTarget(t *testing.T) {
	a, b := blendPair()
	h := newHarness(a)

	h.engine.SetTarget(b)
	assert.Equal(t, Animating, h.engine.Phase())
	assert.Equal(t, 1, h.sched.Pending())

	h.frame(250 * time.Millisecond)
	shown := h.engine.Displayed()
	assert.Equal(t, 0.5, shown.Progress)
	assert.Equal(t, Blend(a, b, 0.5), shown.State)
	assert.False(t, shown.ShowLabels(), "labels hidden mid-transition")
	assert.Equal(t, 1, h.sched.Pending())

	h.frame(300 * time.Millisecond)
	shown = h.engine.Displayed()
	assert.Equal(t, 1.0, shown.Progress)
	assert.Equal(t, b, shown.State)
	assert.True(t, shown.ShowLabels())
	assert.Equal(t, Idle, h.engine.Phase())
	assert.Zero(t, h.sched.Pending(), "no tick after the final frame")

	require.Len(t, h.frames, 2)
}

func TestEngineFirstFrameAtZeroProgress(t *testing.T) {
	a, b := blendPair()
	h := newHarness(a)

	h.engine.SetTarget(b)
	h.frame(0)

	assert.Equal(t, 0.0, h.engine.Displayed().Progress)
	assert.Equal(t, a, h.engine.Displayed().State)
}

func TestEngineRetargetContinuesFromBlend(t *testing.T) {
	a, b := blendPair()
	c := Derive(dayRecords(constant(HoursPerDay, 40), 0))
	h := newHarness(a)

	h.engine.SetTarget(b)
	h.frame(200 * time.Millisecond)
	mid := h.engine.Displayed()
	require.Equal(t, 0.4, mid.Progress)

	h.engine.SetTarget(c)

	assert.Equal(t, Blend(a, b, 0.4), h.engine.Previous())
	assert.NotEqual(t, a, h.engine.Previous())
	assert.Equal(t, c, h.engine.Target())

	// the stale tick from the first transition is dropped
	assert.Equal(t, 2, h.sched.Pending())
	h.frame(250 * time.Millisecond)
	assert.Equal(t, 0.5, h.engine.Displayed().Progress)
	assert.Equal(t, Blend(mid.State, c, 0.5), h.engine.Displayed().State)
	assert.Equal(t, 1, h.sched.Pending())

	h.frame(250 * time.Millisecond)
	assert.Equal(t, c, h.engine.Displayed().State)
	assert.Equal(t, Idle, h.engine.Phase())
}

func TestEngineInvalidTargetHidesImmediately(t *testing.T) {
	a, b := blendPair()
	h := newHarness(a)

	h.engine.SetTarget(b)
	h.frame(100 * time.Millisecond)
	h.engine.SetTarget(DerivedState{})

	assert.Equal(t, Idle, h.engine.Phase())
	assert.Equal(t, Snapshot{State: DerivedState{}, Progress: 1}, h.engine.Displayed())
	assert.False(t, h.engine.Displayed().ShowLabels())

	framesBefore := len(h.frames)
	h.frame(100 * time.Millisecond)
	assert.Len(t, h.frames, framesBefore, "cancelled transition produced a frame")
	assert.Equal(t, DerivedState{}, h.engine.Displayed().State)
}

func TestEngineRecoversFromInvalid(t *testing.T) {
	_, b := blendPair()
	h := newHarness(DerivedState{})

	h.engine.SetTarget(b)
	assert.Equal(t, b, h.engine.Previous(), "nothing to morph from")

	h.frame(100 * time.Millisecond)
	assert.Equal(t, b, h.engine.Displayed().State)
	assert.False(t, h.engine.Displayed().ShowLabels())

	h.frame(400 * time.Millisecond)
	assert.True(t, h.engine.Displayed().ShowLabels())
}

func TestEngineZeroDuration(t *testing.T) {
	a, b := blendPair()
	sched := &ManualScheduler{}
	e := NewEngine(a, NewManualClock(time.Time{}), sched, WithDuration(0))

	e.SetTarget(b)
	sched.Step()

	assert.Equal(t, b, e.Displayed().State)
	assert.Equal(t, Idle, e.Phase())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "animating", Animating.String())
	assert.Equal(t, "unknown", Phase(7).String())
}
