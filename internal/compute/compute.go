// Package compute holds the dashboard's deliberately slow, memoized sum.
package compute

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ziadkadry99/learndash/internal/memo"
)

// ErrOutOfRange is returned for inputs outside the slider range.
var ErrOutOfRange = errors.New("n is outside the allowed range")

// Range is the inclusive slider range for n.
type Range struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Step    int `json:"step"`
	Default int `json:"default"`
}

// Contains reports whether n lies in [Min, Max].
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Result is one answer of the slow sum.
type Result struct {
	N       int           `json:"n"`
	Sum     int64         `json:"sum"`
	Cached  bool          `json:"cached"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// MaxN is the largest n whose SumBelow fits in an int64.
const MaxN int64 = 1 << 32

// SumBelow returns 0 + 1 + ... + (n-1), or 0 when n <= 0. n must not
// exceed MaxN.
func SumBelow(n int) int64 {
	if n <= 0 {
		return 0
	}
	m := int64(n)
	// Halve the even factor first so the product stays in range.
	if m%2 == 0 {
		return (m / 2) * (m - 1)
	}
	return m * ((m - 1) / 2)
}

// Summer computes SumBelow after a simulated delay and remembers every
// answer, so a repeated n returns at once.
type Summer struct {
	rng   Range
	delay time.Duration
	cache *memo.Cache[int, int64]
	now   func() time.Time
}

// NewSummer creates a Summer accepting inputs in rng.
func NewSummer(rng Range, delay time.Duration) *Summer {
	return &Summer{
		rng:   rng,
		delay: delay,
		cache: memo.New[int, int64](),
		now:   time.Now,
	}
}

// Range returns the accepted input range.
func (s *Summer) Range() Range { return s.rng }

// Sum returns the sum of 0..n-1. The first request for n blocks for the
// configured delay; cancelling ctx during the delay aborts it and nothing
// is stored.
func (s *Summer) Sum(ctx context.Context, n int) (Result, error) {
	if !s.rng.Contains(n) {
		return Result{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, n, s.rng.Min, s.rng.Max)
	}

	start := s.now()
	sum, hit, err := s.cache.Do(ctx, n, func(ctx context.Context) (int64, error) {
		if err := sleep(ctx, s.delay); err != nil {
			return 0, err
		}
		return SumBelow(n), nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("computing sum for %d: %w", n, err)
	}

	return Result{N: n, Sum: sum, Cached: hit, Elapsed: s.now().Sub(start)}, nil
}

// CachedInputs returns every n with a stored answer, in ascending order.
func (s *Summer) CachedInputs() []int {
	keys := s.cache.Keys()
	slices.Sort(keys)
	return keys
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
