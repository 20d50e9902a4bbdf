package services

import (
	"context"
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// RecurringSvc stores recurring templates and materializes their occurrences
type RecurringSvc interface {
	// CreateRecurringEntry stores template and returns its new identifier. Nothing is posted.
	CreateRecurringEntry(ctx context.Context, template domain.RecurringEntryTemplate) (string, error)

	// ProcessRecurringEntries posts every not yet materialized occurrence in [from, to]
	// and returns only the entries generated by this call.
	ProcessRecurringEntries(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)

	GetRecurringTemplate(ctx context.Context, templateID string) (*domain.RecurringEntryTemplate, error)
	ListRecurringTemplates(ctx context.Context) ([]domain.RecurringEntryTemplate, error)
	RecurringTemplateCount(ctx context.Context) (int, error)
}
