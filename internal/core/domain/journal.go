package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

const journalNumberPrefix = "JE-"

// JournalEntry is one atomic double-entry posting. Once posted it is owned by the
// ledger and never edited; corrections are new entries.
type JournalEntry struct {
	JournalNumber   string        `json:"journalNumber"` // Assigned at post time
	Sequence        int64         `json:"sequence"`
	Date            time.Time     `json:"date"`
	Description     string        `json:"description"`
	Lines           []JournalLine `json:"lines"`
	IsAdjusting     bool          `json:"isAdjusting"`
	Status          JournalStatus `json:"status"`
	ReversesJournal string        `json:"reversesJournal,omitempty"`

	// Occurrence is set on entries generated from a recurring template. The
	// store records it in the processed set in the same write as the entry.
	Occurrence *ProcessedOccurrence `json:"occurrence,omitempty"`

	AuditFields
}

// FormatJournalNumber renders a sequence as JE-0001.
func FormatJournalNumber(seq int64) string {
	return fmt.Sprintf("%s%04d", journalNumberPrefix, seq)
}

// ParseJournalNumber extracts the sequence from a journal number.
func ParseJournalNumber(number string) (int64, error) {
	raw, ok := strings.CutPrefix(number, journalNumberPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: malformed journal number %q", apperrors.ErrValidation, number)
	}
	seq, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("%w: malformed journal number %q", apperrors.ErrValidation, number)
	}
	return seq, nil
}

// DateOf truncates t to a UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TotalDebits sums the debit lines at full precision.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		if l.Side == Debit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// TotalCredits sums the credit lines at full precision.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		if l.Side == Credit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// IsBalanced reports exact equality of debits and credits, with no tolerance.
func (e JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}

// IsPosted reports whether the ledger has accepted the entry.
func (e JournalEntry) IsPosted() bool {
	return e.Status == Posted
}

// Period returns the accounting period the entry's date falls in.
func (e JournalEntry) Period() PeriodKey {
	return PeriodOf(e.Date)
}

// AccountCodes returns the distinct account codes in line order.
func (e JournalEntry) AccountCodes() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	codes := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountCode]; ok {
			continue
		}
		seen[l.AccountCode] = struct{}{}
		codes = append(codes, l.AccountCode)
	}
	return codes
}

// Clone returns a deep copy so callers cannot alias ledger-owned line slices.
func (e JournalEntry) Clone() JournalEntry {
	lines := make([]JournalLine, len(e.Lines))
	copy(lines, e.Lines)
	e.Lines = lines
	if e.Occurrence != nil {
		occ := *e.Occurrence
		e.Occurrence = &occ
	}
	return e
}

// ValidateEntry checks line shape first and then the double-entry invariant.
func ValidateEntry(e JournalEntry) error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: journal entry date is required", apperrors.ErrValidation)
	}
	var debits, credits int
	for i, l := range e.Lines {
		if strings.TrimSpace(l.AccountCode) == "" {
			return fmt.Errorf("%w: line %d has no account code", apperrors.ErrValidation, i+1)
		}
		if !l.Side.Valid() {
			return fmt.Errorf("%w: line %d has unknown side %q", apperrors.ErrValidation, i+1, l.Side)
		}
		if l.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line %d amount must be positive for account %s", apperrors.ErrValidation, i+1, l.AccountCode)
		}
		if l.Side == Debit {
			debits++
		} else {
			credits++
		}
	}
	if debits == 0 || credits == 0 {
		return &UnbalancedEntryError{
			Debits:  e.TotalDebits(),
			Credits: e.TotalCredits(),
			Reason:  "entry needs at least one debit and one credit line",
		}
	}
	if !e.IsBalanced() {
		return &UnbalancedEntryError{Debits: e.TotalDebits(), Credits: e.TotalCredits()}
	}
	return nil
}
