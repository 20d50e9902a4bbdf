package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

type recurringRepository struct {
	db *bolt.DB
}

var _ portsrepo.RecurringRepositoryFacade = (*recurringRepository)(nil)

// CreateTemplate implements portsrepo.RecurringTemplateWriter
func (r *recurringRepository) CreateTemplate(_ context.Context, template domain.RecurringEntryTemplate) (*domain.RecurringEntryTemplate, error) {
	var created domain.RecurringEntryTemplate
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTemplates))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		created = template.Clone()
		created.ID = domain.FormatTemplateID(int64(seq))
		return putJSON(b, itob(int64(seq)), mapping.ToModelRecurringTemplate(created, int64(seq)))
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindTemplateByID implements portsrepo.RecurringTemplateReader
func (r *recurringRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.RecurringEntryTemplate, error) {
	templates, err := r.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == templateID {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("template %s: %w", templateID, apperrors.ErrNotFound)
}

// ListTemplates implements portsrepo.RecurringTemplateReader
func (r *recurringRepository) ListTemplates(_ context.Context) ([]domain.RecurringEntryTemplate, error) {
	var out []domain.RecurringEntryTemplate
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTemplates)).ForEach(func(_, v []byte) error {
			var m models.RecurringTemplate
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal recurring template: %w", err)
			}
			out = append(out, mapping.ToDomainRecurringTemplate(m))
			return nil
		})
	})
	return out, err
}

// IsOccurrenceProcessed implements portsrepo.OccurrenceTracker
func (r *recurringRepository) IsOccurrenceProcessed(_ context.Context, templateID string, date time.Time) (bool, error) {
	var found bool
	err := r.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(bucketOccurrences)).Get([]byte(domain.OccurrenceKey(templateID, date))) != nil
		return nil
	})
	return found, err
}
