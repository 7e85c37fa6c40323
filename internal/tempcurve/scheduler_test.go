package tempcurve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerDefersNestedCallbacks(t *testing.T) {
	var s ManualScheduler
	var order []string

	s.Schedule(func() {
		order = append(order, "a")
		s.Schedule(func() { order = append(order, "c") })
	})
	s.Schedule(func() { order = append(order, "b") })

	assert.Equal(t, 2, s.Step())
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, s.Pending())

	assert.Equal(t, 1, s.Step())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, s.Step())
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	c.Advance(1500 * time.Millisecond)

	assert.Equal(t, start.Add(1500*time.Millisecond), c.Now())
}

func TestFrameLoopRunsInOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loop := NewFrameLoop(time.Millisecond, nil)
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	got := make(chan int, 3)
	require.NoError(t, loop.Post(ctx, func() {
		for i := 0; i < 3; i++ {
			loop.Schedule(func() { got <- i })
		}
	}))

	for want := 0; want < 3; want++ {
		select {
		case v := <-got:
			assert.Equal(t, want, v)
		case <-ctx.Done():
			t.Fatal("timed out waiting for frame callbacks")
		}
	}

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestFrameLoopDrivesEngine(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, b := blendPair()
	loop := NewFrameLoop(time.Millisecond, nil)
	done := make(chan Snapshot, 1)
	engine := NewEngine(a, SystemClock{}, loop,
		WithDuration(20*time.Millisecond),
		WithFrameHandler(func(s Snapshot) {
			if s.Progress >= 1 {
				done <- s
			}
		}),
	)
	go loop.Run(ctx)

	require.NoError(t, loop.Post(ctx, func() { engine.SetTarget(b) }))

	select {
	case s := <-done:
		assert.Equal(t, b, s.State)
	case <-ctx.Done():
		t.Fatal("transition never finished")
	}
}
