// Package jobs holds background loops driven by the server process.
package jobs

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/middleware"
)

// RecurringJob materialises recurring entries for a trailing window on every tick.
// Re-running a window is harmless since processed occurrences are skipped.
type RecurringJob struct {
	recurring portssvc.RecurringSvc
	interval  time.Duration
	lookback  time.Duration
	clock     func() time.Time
}

func NewRecurringJob(recurring portssvc.RecurringSvc, interval, lookback time.Duration) *RecurringJob {
	return &RecurringJob{
		recurring: recurring,
		interval:  interval,
		lookback:  lookback,
		clock:     time.Now,
	}
}

// RunOnce processes [now-lookback, now] and returns the number of entries posted.
func (j *RecurringJob) RunOnce(ctx context.Context) (int, error) {
	now := j.clock().UTC()
	generated, err := j.recurring.ProcessRecurringEntries(ctx, now.Add(-j.lookback), now)
	return len(generated), err
}

// Run ticks until ctx is cancelled.
func (j *RecurringJob) Run(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		n, err := j.RunOnce(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			logger.Warn("Recurring job pass failed", slog.String("error", err.Error()), slog.Int("generated", n))
		case n > 0:
			logger.Info("Recurring entries generated", slog.Int("count", n))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
