package events

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// JournalPublisher announces posted entries to downstream consumers.
type JournalPublisher interface {
	PublishJournalPosted(ctx context.Context, entries ...domain.JournalEntry) error
	Close() error
}
