// Package session keeps per-user values that survive between requests.
//
// A session is identified by an opaque id carried in a cookie. Values are
// named integers; the dashboard's counter is the only one in use today.
package session

import (
	"context"
	"time"
)

// CounterKey is the session value mutated by the counter buttons.
const CounterKey = "counter"

// Backend stores named integers per session. A value that was never
// written reads as zero. Implementations must apply Add atomically since
// the HTTP server may run two requests of one session at the same time.
type Backend interface {
	// Touch creates the session if needed and marks it as recently used.
	Touch(ctx context.Context, id string) error
	Get(ctx context.Context, id, key string) (int64, error)
	Add(ctx context.Context, id, key string, delta int64) (int64, error)
	Set(ctx context.Context, id, key string, value int64) error
	// End drops the session and every value in it.
	End(ctx context.Context, id string) error
}

// Expirer is implemented by backends that need an explicit sweep to drop
// idle sessions. Redis expires keys on its own and does not implement it.
type Expirer interface {
	Expire(ctx context.Context, idle time.Duration) (int64, error)
}

// Counter is the increment/decrement/reset counter held in session state.
type Counter struct {
	backend Backend
	key     string
}

// NewCounter returns a Counter stored under CounterKey.
func NewCounter(b Backend) *Counter {
	return &Counter{backend: b, key: CounterKey}
}

// Value returns the current count, 0 for a fresh session.
func (c *Counter) Value(ctx context.Context, sessionID string) (int64, error) {
	return c.backend.Get(ctx, sessionID, c.key)
}

// Increment adds one and returns the new count.
func (c *Counter) Increment(ctx context.Context, sessionID string) (int64, error) {
	return c.backend.Add(ctx, sessionID, c.key, 1)
}

// Decrement subtracts one and returns the new count. There is no lower bound.
func (c *Counter) Decrement(ctx context.Context, sessionID string) (int64, error) {
	return c.backend.Add(ctx, sessionID, c.key, -1)
}

// Reset sets the count back to zero.
func (c *Counter) Reset(ctx context.Context, sessionID string) (int64, error) {
	if err := c.backend.Set(ctx, sessionID, c.key, 0); err != nil {
		return 0, err
	}
	return 0, nil
}
