package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

// RecurringRepository stores templates in creation order and the processed occurrence set.
type RecurringRepository struct {
	mu        sync.RWMutex
	seq       int64
	templates []domain.RecurringEntryTemplate
	processed map[string]domain.ProcessedOccurrence
}

func newRecurringRepository() *RecurringRepository {
	return &RecurringRepository{processed: make(map[string]domain.ProcessedOccurrence)}
}

var _ portsrepo.RecurringRepositoryFacade = (*RecurringRepository)(nil)

// CreateTemplate implements portsrepo.RecurringTemplateWriter
func (r *RecurringRepository) CreateTemplate(_ context.Context, template domain.RecurringEntryTemplate) (*domain.RecurringEntryTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	stored := template.Clone()
	stored.ID = domain.FormatTemplateID(r.seq)
	r.templates = append(r.templates, stored)

	result := stored.Clone()
	return &result, nil
}

// FindTemplateByID implements portsrepo.RecurringTemplateReader
func (r *RecurringRepository) FindTemplateByID(_ context.Context, templateID string) (*domain.RecurringEntryTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.templates {
		if t.ID == templateID {
			result := t.Clone()
			return &result, nil
		}
	}
	return nil, fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
}

// ListTemplates implements portsrepo.RecurringTemplateReader
func (r *RecurringRepository) ListTemplates(_ context.Context) ([]domain.RecurringEntryTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.RecurringEntryTemplate, len(r.templates))
	for i, t := range r.templates {
		out[i] = t.Clone()
	}
	return out, nil
}

// IsOccurrenceProcessed implements portsrepo.OccurrenceTracker
func (r *RecurringRepository) IsOccurrenceProcessed(_ context.Context, templateID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.processed[domain.OccurrenceKey(templateID, date)]
	return ok, nil
}

// insertOccurrence adds occurrence unless its key is present and reports whether it did.
func (r *RecurringRepository) insertOccurrence(occurrence domain.ProcessedOccurrence) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := occurrence.Key()
	if _, ok := r.processed[key]; ok {
		return false
	}
	r.processed[key] = occurrence
	return true
}
