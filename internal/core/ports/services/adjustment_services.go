package services

import (
	"context"
	"time"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/dto"
)

// AdjustmentSvc derives correcting and period-end entries and posts them
type AdjustmentSvc interface {
	// ReverseJournal posts the mirror image of an existing entry.
	ReverseJournal(ctx context.Context, journalNumber string, reversalDate time.Time, reason string) (*domain.JournalEntry, error)

	// CreateAdjustingEntry posts a single debit / single credit entry flagged as adjusting.
	CreateAdjustingEntry(ctx context.Context, req dto.CreateAdjustingEntryRequest) (*domain.JournalEntry, error)

	// CreateClosingEntries zeroes revenue and expense balances as of date into retainedEarningsAccount.
	CreateClosingEntries(ctx context.Context, date time.Time, retainedEarningsAccount string) ([]domain.JournalEntry, error)
}
