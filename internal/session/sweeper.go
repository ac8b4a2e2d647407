package session

import (
	"context"
	"log"
	"time"
)

// Sweep removes sessions idle for longer than idle, once every interval,
// until ctx is cancelled.
func Sweep(ctx context.Context, e Expirer, idle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := e.Expire(ctx, idle)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("session: sweep: %v", err)
				}
				continue
			}
			if n > 0 {
				log.Printf("session: expired %d idle sessions", n)
			}
		}
	}
}
