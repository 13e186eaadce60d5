package web

import (
	"context"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/logging"
)

const purgeTimeout = 10 * time.Second

var now = time.Now

type stalePurger interface {
	PurgeStale(ctx context.Context, before time.Time) (int64, error)
}

// janitorInterval is how often persisted snapshots of idle sessions are
// purged for the given session ttl.
func janitorInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Minute)
}

// runJanitor purges snapshots of browsing sessions idle for longer than ttl
// every interval until ctx is done.
func runJanitor(ctx context.Context, p stalePurger, ttl, interval time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			purgeStale(ctx, p, ttl, logger)
		case <-ctx.Done():
			return
		}
	}
}

func purgeStale(ctx context.Context, p stalePurger, ttl time.Duration, logger logging.Logger) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), purgeTimeout)
	defer cancel()

	n, err := p.PurgeStale(ctx, now().Add(-ttl))
	if err != nil {
		logger.Warn(ctx, "failed to purge stale browsing sessions", "error", err)
		return
	}
	if n > 0 {
		logger.Info(ctx, "purged stale browsing sessions", "count", n)
	}
}
