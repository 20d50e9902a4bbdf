package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

var (
	ErrUnbalancedEntry  = errors.New("journal entry must be balanced")
	ErrPeriodLocked     = errors.New("period is locked")
	ErrUnknownAccount   = errors.New("invalid account code")
	ErrJournalNotFound  = fmt.Errorf("journal %w", apperrors.ErrNotFound)
	ErrTemplateNotFound = fmt.Errorf("recurring template %w", apperrors.ErrNotFound)

	// ErrOccurrenceProcessed is returned by the journal store when a recurring
	// occurrence was already posted; the entry is not written.
	ErrOccurrenceProcessed = fmt.Errorf("recurring occurrence already posted: %w", apperrors.ErrConflict)
)

// UnbalancedEntryError is returned when an entry's debit and credit totals differ
// or when one side has no lines at all.
type UnbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Reason  string
}

func (e *UnbalancedEntryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrUnbalancedEntry, e.Reason)
	}
	return fmt.Sprintf("%s: debits %s != credits %s", ErrUnbalancedEntry, e.Debits.String(), e.Credits.String())
}

func (e *UnbalancedEntryError) Unwrap() error { return ErrUnbalancedEntry }

// PeriodLockedError is returned when a posting targets a locked period.
type PeriodLockedError struct {
	Period PeriodKey
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("period %s is locked", e.Period)
}

func (e *PeriodLockedError) Unwrap() error { return ErrPeriodLocked }

// UnknownAccountError is returned when account validation is enabled and a line
// references a code missing from the chart of accounts.
type UnknownAccountError struct {
	AccountCode string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownAccount, e.AccountCode)
}

func (e *UnknownAccountError) Unwrap() error { return ErrUnknownAccount }

// JournalNotFoundError is returned when a journal number has never been posted.
type JournalNotFoundError struct {
	JournalNumber string
}

func (e *JournalNotFoundError) Error() string {
	return fmt.Sprintf("journal %s not found", e.JournalNumber)
}

func (e *JournalNotFoundError) Unwrap() error { return ErrJournalNotFound }
