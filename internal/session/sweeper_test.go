package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingExpirer struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (c *countingExpirer) Expire(_ context.Context, idle time.Duration) (int64, error) {
	c.idle.Store(int64(idle))
	c.calls.Add(1)
	return 0, nil
}

func TestSweepRunsUntilCancelled(t *testing.T) {
	e := &countingExpirer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Sweep(ctx, e, time.Hour, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for e.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not run")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
	if time.Duration(e.idle.Load()) != time.Hour {
		t.Errorf("idle = %v, want 1h", time.Duration(e.idle.Load()))
	}
}
