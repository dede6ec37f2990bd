package kitchen

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often past meals are purged.
const DefaultSweepInterval = time.Minute

// RunSweeper removes past meals once immediately and then on every tick until
// ctx is cancelled.
func RunSweeper(ctx context.Context, store *Store, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	sweep := func() {
		if n := store.SweepPastMeals(ctx); n > 0 {
			logger.Info("removed past meals", "count", n)
		}
	}

	sweep()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
