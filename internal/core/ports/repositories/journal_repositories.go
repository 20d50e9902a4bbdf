package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// JournalFilter selects a consistent prefix of the journal, optionally narrowed by date.
type JournalFilter struct {
	MaxSequence int64     // inclusive upper bound; entries appended later are invisible
	From        time.Time // inclusive; zero means unbounded
	To          time.Time // inclusive; zero means unbounded
}

// Matches reports whether entry falls inside the filter.
func (f JournalFilter) Matches(entry domain.JournalEntry) bool {
	if entry.Sequence > f.MaxSequence {
		return false
	}
	if !f.From.IsZero() && entry.Date.Before(domain.DateOf(f.From)) {
		return false
	}
	if !f.To.IsZero() && entry.Date.After(domain.DateOf(f.To)) {
		return false
	}
	return true
}

// JournalReader defines read operations for the posted journal
type JournalReader interface {
	// FindJournalByNumber returns a wrapped apperrors.ErrNotFound when the number was never posted.
	FindJournalByNumber(ctx context.Context, journalNumber string) (*domain.JournalEntry, error)

	// FindJournals returns the entries matching filter, ordered by sequence.
	FindJournals(ctx context.Context, filter JournalFilter) ([]domain.JournalEntry, error)

	// ListJournalsAfter returns up to limit entries with a sequence greater than afterSequence.
	ListJournalsAfter(ctx context.Context, afterSequence int64, limit int) ([]domain.JournalEntry, error)

	// LastSequence returns the highest appended sequence, or zero for an empty journal.
	LastSequence(ctx context.Context) (int64, error)
}

// JournalWriter defines the single write operation the journal supports
type JournalWriter interface {
	// AppendJournal durably stores a posted entry. Sequence and JournalNumber are already
	// assigned. In the same unit of work the store must
	//   - fail with apperrors.ErrDuplicate when the sequence or number is taken,
	//   - fail with *domain.PeriodLockedError when the entry's period is locked,
	//   - record entry.Occurrence, if set, failing with domain.ErrOccurrenceProcessed
	//     when that occurrence was already recorded.
	// A failed append leaves no trace.
	AppendJournal(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
