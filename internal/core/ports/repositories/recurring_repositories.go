package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// RecurringTemplateReader defines read operations for recurring templates
type RecurringTemplateReader interface {
	FindTemplateByID(ctx context.Context, templateID string) (*domain.RecurringEntryTemplate, error)

	// ListTemplates returns all templates in creation order.
	ListTemplates(ctx context.Context) ([]domain.RecurringEntryTemplate, error)
}

// RecurringTemplateWriter defines write operations for recurring templates
type RecurringTemplateWriter interface {
	// CreateTemplate assigns the next REC-n identifier and stores the template.
	CreateTemplate(ctx context.Context, template domain.RecurringEntryTemplate) (*domain.RecurringEntryTemplate, error)
}

// OccurrenceTracker reads the processed (template, date) set. Occurrences are
// written by JournalWriter.AppendJournal together with their entry.
type OccurrenceTracker interface {
	IsOccurrenceProcessed(ctx context.Context, templateID string, date time.Time) (bool, error)
}

// RecurringRepositoryFacade combines all recurring-entry repository interfaces
type RecurringRepositoryFacade interface {
	RecurringTemplateReader
	RecurringTemplateWriter
	OccurrenceTracker
}
