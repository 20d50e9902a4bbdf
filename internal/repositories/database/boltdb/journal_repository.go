package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

type journalRepository struct {
	db *bolt.DB
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

// AppendJournal implements portsrepo.JournalWriter. The lock check and the
// occurrence insert share the write transaction, which bbolt runs one at a time.
func (r *journalRepository) AppendJournal(_ context.Context, entry domain.JournalEntry) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		journals := tx.Bucket([]byte(bucketJournals))
		numbers := tx.Bucket([]byte(bucketJournalNumbers))

		if k, _ := journals.Cursor().Last(); k != nil && btoi(k) >= entry.Sequence {
			return fmt.Errorf("sequence %d: %w", entry.Sequence, apperrors.ErrDuplicate)
		}
		if numbers.Get([]byte(entry.JournalNumber)) != nil {
			return fmt.Errorf("journal %s: %w", entry.JournalNumber, apperrors.ErrDuplicate)
		}

		locked, err := periodLocked(tx, entry.Period())
		if err != nil {
			return err
		}
		if locked {
			return &domain.PeriodLockedError{Period: entry.Period()}
		}

		if entry.Occurrence != nil {
			occ := *entry.Occurrence
			occ.JournalNumber = entry.JournalNumber
			occurrences := tx.Bucket([]byte(bucketOccurrences))
			key := []byte(occ.Key())
			if occurrences.Get(key) != nil {
				return fmt.Errorf("%s: %w", occ.Key(), domain.ErrOccurrenceProcessed)
			}
			err := putJSON(occurrences, key, models.ProcessedOccurrence{
				TemplateID:     occ.TemplateID,
				OccurrenceDate: domain.DateOf(occ.Date),
				JournalNumber:  occ.JournalNumber,
				ProcessedAt:    entry.CreatedAt,
			})
			if err != nil {
				return err
			}
		}

		if err := putJSON(journals, itob(entry.Sequence), mapping.ToModelJournal(entry)); err != nil {
			return err
		}
		return numbers.Put([]byte(entry.JournalNumber), itob(entry.Sequence))
	})
}

// FindJournalByNumber implements portsrepo.JournalReader
func (r *journalRepository) FindJournalByNumber(_ context.Context, journalNumber string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := r.db.View(func(tx *bolt.Tx) error {
		seq := tx.Bucket([]byte(bucketJournalNumbers)).Get([]byte(journalNumber))
		if seq == nil {
			return fmt.Errorf("journal %s: %w", journalNumber, apperrors.ErrNotFound)
		}
		e, err := decodeJournal(tx.Bucket([]byte(bucketJournals)).Get(seq))
		if err != nil {
			return err
		}
		entry = &e
		return nil
	})
	return entry, err
}

// FindJournals implements portsrepo.JournalReader
func (r *journalRepository) FindJournals(_ context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketJournals)).Cursor()
		for k, v := c.First(); k != nil && btoi(k) <= filter.MaxSequence; k, v = c.Next() {
			e, err := decodeJournal(v)
			if err != nil {
				return err
			}
			if filter.Matches(e) {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, err
}

// ListJournalsAfter implements portsrepo.JournalReader
func (r *journalRepository) ListJournalsAfter(_ context.Context, afterSequence int64, limit int) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketJournals)).Cursor()
		for k, v := c.Seek(itob(afterSequence + 1)); k != nil; k, v = c.Next() {
			if limit > 0 && len(out) == limit {
				break
			}
			e, err := decodeJournal(v)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// LastSequence implements portsrepo.JournalReader
func (r *journalRepository) LastSequence(_ context.Context) (int64, error) {
	var last int64
	err := r.db.View(func(tx *bolt.Tx) error {
		if k, _ := tx.Bucket([]byte(bucketJournals)).Cursor().Last(); k != nil {
			last = btoi(k)
		}
		return nil
	})
	return last, err
}

func decodeJournal(data []byte) (domain.JournalEntry, error) {
	var m models.Journal
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to unmarshal journal: %w", err)
	}
	return mapping.ToDomainJournal(m), nil
}
