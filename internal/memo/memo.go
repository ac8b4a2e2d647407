// Package memo caches the results of pure functions by input key.
//
// There is no eviction, TTL or capacity bound: a Cache is only suitable for
// small, bounded input domains. Each key has a single writer; callers that
// ask for a key while it is being computed wait for that computation.
package memo

import (
	"context"
	"errors"
	"sync"
)

// errAborted marks an entry whose computation never returned.
var errAborted = errors.New("memo: computation aborted")

type entry[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// Cache memoizes values of type V keyed by K.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
}

// New returns an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]*entry[V])}
}

// Do returns the cached value for key, calling fn to produce it on the
// first request. hit reports whether the value was already stored when Do
// was called. A failed computation is not stored, so the next caller
// retries it.
func (c *Cache[K, V]) Do(ctx context.Context, key K, fn func(context.Context) (V, error)) (value V, hit bool, err error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		hit := true
		select {
		case <-e.done:
		default:
			// In flight: wait for the owner.
			hit = false
			select {
			case <-e.done:
			case <-ctx.Done():
				var zero V
				return zero, false, ctx.Err()
			}
		}
		if e.err != nil {
			return c.Do(ctx, key, fn)
		}
		return e.value, hit, nil
	}

	e := &entry[V]{done: make(chan struct{}), err: errAborted}
	c.entries[key] = e
	c.mu.Unlock()

	// Waiters must be released even if fn panics.
	defer func() {
		if e.err != nil {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		close(e.done)
	}()

	e.value, e.err = fn(ctx)
	return e.value, false, e.err
}

// get returns the stored value for key without computing it.
func (c *Cache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		select {
		case <-e.done:
			if e.err == nil {
				return e.value, true
			}
		default:
		}
	}
	var zero V
	return zero, false
}

// len returns the number of stored or in-flight keys.
func (c *Cache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns the keys with a completed value, in no particular order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]K, 0, len(c.entries))
	for k, e := range c.entries {
		select {
		case <-e.done:
			if e.err == nil {
				keys = append(keys, k)
			}
		default:
		}
	}
	return keys
}
