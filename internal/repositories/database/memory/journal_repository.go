package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

// JournalRepository keeps the journal as an append-only slice ordered by sequence.
// Appends consult the period and recurring stores under their locks, always
// taken in the order journal, periods, recurring.
type JournalRepository struct {
	mu       sync.RWMutex
	entries  []domain.JournalEntry
	byNumber map[string]int

	periods   *PeriodRepository
	recurring *RecurringRepository
}

func newJournalRepository(periods *PeriodRepository, recurring *RecurringRepository) *JournalRepository {
	return &JournalRepository{
		byNumber:  make(map[string]int),
		periods:   periods,
		recurring: recurring,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*JournalRepository)(nil)

// AppendJournal implements portsrepo.JournalWriter
func (r *JournalRepository) AppendJournal(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var last int64
	if n := len(r.entries); n > 0 {
		last = r.entries[n-1].Sequence
	}
	if entry.Sequence <= last {
		return fmt.Errorf("sequence %d: %w", entry.Sequence, apperrors.ErrDuplicate)
	}
	if _, exists := r.byNumber[entry.JournalNumber]; exists {
		return fmt.Errorf("journal %s: %w", entry.JournalNumber, apperrors.ErrDuplicate)
	}

	if r.periods != nil {
		r.periods.mu.RLock()
		defer r.periods.mu.RUnlock()
		if _, locked := r.periods.locked[entry.Period()]; locked {
			return &domain.PeriodLockedError{Period: entry.Period()}
		}
	}
	if entry.Occurrence != nil {
		if r.recurring == nil {
			return fmt.Errorf("journal %s carries a recurring occurrence but no recurring store is attached", entry.JournalNumber)
		}
		occ := *entry.Occurrence
		occ.Date = domain.DateOf(occ.Date)
		occ.JournalNumber = entry.JournalNumber
		if !r.recurring.insertOccurrence(occ) {
			return fmt.Errorf("%s: %w", occ.Key(), domain.ErrOccurrenceProcessed)
		}
	}

	r.byNumber[entry.JournalNumber] = len(r.entries)
	r.entries = append(r.entries, entry.Clone())
	return nil
}

// FindJournalByNumber implements portsrepo.JournalReader
func (r *JournalRepository) FindJournalByNumber(_ context.Context, journalNumber string) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byNumber[journalNumber]
	if !ok {
		return nil, fmt.Errorf("journal %s: %w", journalNumber, apperrors.ErrNotFound)
	}
	entry := r.entries[idx].Clone()
	return &entry, nil
}

// FindJournals implements portsrepo.JournalReader
func (r *JournalRepository) FindJournals(_ context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.JournalEntry
	for _, e := range r.entries {
		if e.Sequence > filter.MaxSequence {
			break
		}
		if filter.Matches(e) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

// ListJournalsAfter implements portsrepo.JournalReader
func (r *JournalRepository) ListJournalsAfter(_ context.Context, afterSequence int64, limit int) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.JournalEntry
	for _, e := range r.entries {
		if e.Sequence <= afterSequence {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, e.Clone())
	}
	return out, nil
}

// LastSequence implements portsrepo.JournalReader
func (r *JournalRepository) LastSequence(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return 0, nil
	}
	return r.entries[len(r.entries)-1].Sequence, nil
}
