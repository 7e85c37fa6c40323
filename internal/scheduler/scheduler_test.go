package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartRunsImmediatelyAndOnTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	s := New(5*time.Millisecond, func(ctx context.Context) error {
		if runs.Add(1) == 3 {
			cancel()
		}
		return nil
	}, nil)

	err := s.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestStartKeepsGoingAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	s := New(time.Millisecond, func(ctx context.Context) error {
		if runs.Add(1) >= 2 {
			cancel()
		}
		return errors.New("upload failed")
	}, nil)

	assert.ErrorIs(t, s.Start(ctx), context.Canceled)
	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}
