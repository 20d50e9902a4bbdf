// Package relay publishes posted journal entries outside the posting critical section.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/middleware"
)

const (
	defaultBatchSize = 100
	defaultInterval  = 5 * time.Second
)

// JournalRelay walks the journal by sequence and hands each page to the
// publisher. Delivery is at least once: the cursor only advances after a
// page was accepted.
type JournalRelay struct {
	reader    portsrepo.JournalReader
	publisher events.JournalPublisher
	breaker   *gobreaker.CircuitBreaker
	batchSize int
	interval  time.Duration

	mu     sync.Mutex
	cursor int64
	wake   chan struct{}
}

// Option configures a JournalRelay.
type Option func(*JournalRelay)

// WithBatchSize bounds how many entries go into one publish call.
func WithBatchSize(n int) Option {
	return func(r *JournalRelay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithInterval sets the polling interval used when no post wakes the relay.
func WithInterval(d time.Duration) Option {
	return func(r *JournalRelay) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithStartSequence skips entries up to and including seq.
func WithStartSequence(seq int64) Option {
	return func(r *JournalRelay) {
		r.cursor = seq
	}
}

// WithBreakerSettings replaces the default circuit breaker settings.
func WithBreakerSettings(settings gobreaker.Settings) Option {
	return func(r *JournalRelay) {
		r.breaker = gobreaker.NewCircuitBreaker(settings)
	}
}

func NewJournalRelay(reader portsrepo.JournalReader, publisher events.JournalPublisher, options ...Option) *JournalRelay {
	r := &JournalRelay{
		reader:    reader,
		publisher: publisher,
		batchSize: defaultBatchSize,
		interval:  defaultInterval,
		wake:      make(chan struct{}, 1),
	}
	for _, option := range options {
		option(r)
	}
	if r.breaker == nil {
		r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "journal-publisher",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("Circuit breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		})
	}
	return r
}

// Notify wakes Run early. It never blocks, so it is safe as a posted listener.
func (r *JournalRelay) Notify(domain.JournalEntry) {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Cursor returns the highest sequence already handed to the publisher.
func (r *JournalRelay) Cursor() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cursor
}

// RunOnce publishes pages until the relay has caught up with the journal.
func (r *JournalRelay) RunOnce(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	published := 0
	for {
		entries, err := r.reader.ListJournalsAfter(ctx, r.cursor, r.batchSize)
		if err != nil {
			return published, fmt.Errorf("read journal after %d: %w", r.cursor, err)
		}
		if len(entries) == 0 {
			return published, nil
		}

		_, err = r.breaker.Execute(func() (interface{}, error) {
			return nil, r.publisher.PublishJournalPosted(ctx, entries...)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return published, fmt.Errorf("publisher unavailable: %w", err)
			}
			return published, fmt.Errorf("publish from sequence %d: %w", entries[0].Sequence, err)
		}

		r.cursor = entries[len(entries)-1].Sequence
		published += len(entries)
		if len(entries) < r.batchSize {
			return published, nil
		}
	}
}

// Run loops until ctx is cancelled. Publish failures are logged and retried on the next tick.
func (r *JournalRelay) Run(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		n, err := r.RunOnce(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Warn("Journal relay pass failed",
				slog.String("error", err.Error()),
				slog.Int64("cursor", r.Cursor()))
		} else if n > 0 {
			logger.Info("Journal entries published",
				slog.Int("count", n),
				slog.Int64("cursor", r.Cursor()))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-r.wake:
		}
	}
}
