package audit

import (
	"context"
	"log"
	"time"
)

// Prune removes entries older than maxAge and returns how many were deleted.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.DeleteBefore(ctx, time.Now().Add(-maxAge))
}

// RunRetention prunes entries older than maxAge once every interval until
// ctx is cancelled.
func RunRetention(ctx context.Context, store *Store, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Prune(ctx, maxAge)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("audit: prune: %v", err)
				}
				continue
			}
			if n > 0 {
				log.Printf("audit: pruned %d entries older than %s", n, maxAge)
			}
		}
	}
}
