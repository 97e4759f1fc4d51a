package cache

import (
	"context"
	"time"
)

// sweepLoop periodically removes expired entries so memory is reclaimed
// even for keys nobody reads again. A single ticker drives it, so sweeps
// never overlap; each pass is one O(n) scan of the bounded entry set.
func (c *Cache) sweepLoop(ctx context.Context, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Cleanup()
		}
	}
}
