package memo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoComputesOnce(t *testing.T) {
	c := New[int, int]()
	ctx := t.Context()
	var calls int

	fn := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := c.Do(ctx, 1, fn)
	if err != nil || v != 42 || hit {
		t.Fatalf("first Do = (%d, %v, %v), want (42, false, nil)", v, hit, err)
	}
	v, hit, err = c.Do(ctx, 1, fn)
	if err != nil || v != 42 || !hit {
		t.Fatalf("second Do = (%d, %v, %v), want (42, true, nil)", v, hit, err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	if c.len() != 1 {
		t.Errorf("len() = %d, want 1", c.len())
	}
}

func TestDoSeparatesKeys(t *testing.T) {
	c := New[string, string]()
	ctx := t.Context()

	a, _, _ := c.Do(ctx, "a", func(context.Context) (string, error) { return "A", nil })
	b, _, _ := c.Do(ctx, "b", func(context.Context) (string, error) { return "B", nil })
	if a != "A" || b != "B" {
		t.Errorf("got %q, %q", a, b)
	}
	if got, ok := c.get("a"); !ok || got != "A" {
		t.Errorf("get(a) = %q, %v", got, ok)
	}
	if _, ok := c.get("missing"); ok {
		t.Error("get(missing) reported a value")
	}
	if len(c.Keys()) != 2 {
		t.Errorf("Keys() = %v", c.Keys())
	}
}

func TestDoDoesNotCacheErrors(t *testing.T) {
	c := New[int, int]()
	ctx := t.Context()
	boom := errors.New("boom")

	if _, _, err := c.Do(ctx, 7, func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if c.len() != 0 {
		t.Errorf("failed computation was stored")
	}

	v, hit, err := c.Do(ctx, 7, func(context.Context) (int, error) { return 49, nil })
	if err != nil || v != 49 || hit {
		t.Errorf("retry Do = (%d, %v, %v), want (49, false, nil)", v, hit, err)
	}
}

func TestDoSingleWriterPerKey(t *testing.T) {
	c := New[int, int]()
	ctx := t.Context()
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 9, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.Do(ctx, 3, fn)
			if err != nil {
				t.Errorf("Do: %v", err)
			}
			results[i] = v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("fn called %d times, want 1", n)
	}
	for i, v := range results {
		if v != 9 {
			t.Errorf("results[%d] = %d, want 9", i, v)
		}
	}
}

func TestDoWaiterHonoursContext(t *testing.T) {
	c := New[int, int]()
	release := make(chan struct{})
	defer close(release)

	started := make(chan struct{})
	go c.Do(context.Background(), 1, func(context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	})
	<-started

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, _, err := c.Do(ctx, 1, func(context.Context) (int, error) {
		t.Error("waiter must not compute")
		return 0, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestDoReleasesWaitersWhenComputationPanics(t *testing.T) {
	c := New[int, int]()
	ctx := t.Context()
	started := make(chan struct{})
	release := make(chan struct{})

	ownerDone := make(chan any, 1)
	go func() {
		defer func() { ownerDone <- recover() }()
		c.Do(ctx, 3, func(context.Context) (int, error) {
			close(started)
			<-release
			panic("compute failed")
		})
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	waiter := make(chan result, 1)
	go func() {
		v, _, err := c.Do(ctx, 3, func(context.Context) (int, error) { return 9, nil })
		waiter <- result{v, err}
	}()
	close(release)

	if r := <-ownerDone; r == nil {
		t.Error("panic was swallowed")
	}
	select {
	case got := <-waiter:
		if got.err != nil || got.v != 9 {
			t.Errorf("waiter got (%d, %v), want (9, nil)", got.v, got.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter blocked after the computation panicked")
	}
	if v, ok := c.get(3); !ok || v != 9 {
		t.Errorf("get(3) = (%d, %v), want (9, true)", v, ok)
	}
}
