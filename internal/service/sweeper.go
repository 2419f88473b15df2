package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ExpirationSweeper drives the periodic active->expired transition. It runs
// one sweep at startup and then on every tick. A sweep failure is logged and
// retried on the next tick; the sweep itself is idempotent so nothing more
// is needed.
type ExpirationSweeper struct {
	subs     SubscriptionService
	interval time.Duration
	logger   *slog.Logger

	mu sync.Mutex // guards against overlapping sweeps
}

// NewExpirationSweeper creates a sweeper. A non-positive interval defaults
// to hourly.
func NewExpirationSweeper(subs SubscriptionService, interval time.Duration, logger *slog.Logger) *ExpirationSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpirationSweeper{subs: subs, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, sweeping once immediately and then on
// every interval tick. Intended to be launched as a goroutine from main.
func (w *ExpirationSweeper) Run(ctx context.Context) {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("expiration sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep runs one pass. If a previous pass is still in flight the tick is
// skipped rather than run concurrently.
func (w *ExpirationSweeper) sweep(ctx context.Context) {
	if !w.mu.TryLock() {
		w.logger.Warn("previous sweep still running, skipping tick")
		return
	}
	defer w.mu.Unlock()

	count, err := w.subs.SweepExpired(ctx)
	if err != nil {
		w.logger.Error("expiration sweep failed, will retry next tick", "error", err)
		return
	}
	if count > 0 {
		w.logger.Info("expired subscriptions swept", "count", count)
	}
}
