package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// JournalPosterSvc accepts balanced entries into the ledger
type JournalPosterSvc interface {
	// Post validates entry, assigns the next journal number and appends it.
	// A rejected entry leaves the journal and the counter untouched.
	Post(ctx context.Context, entry domain.JournalEntry) (string, error)

	// PostEntry is Post returning a read-only copy of the stored entry.
	PostEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read operations over posted entries
type JournalReaderSvc interface {
	GetJournal(ctx context.Context, journalNumber string) (*domain.JournalEntry, error)

	// ListJournals returns a page of entries in posting order and a token for the next page.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	JournalCount(ctx context.Context) (int64, error)
	JournalNumbers(ctx context.Context) ([]string, error)
}

// PeriodLockSvc toggles and inspects period locks
type PeriodLockSvc interface {
	LockPeriod(ctx context.Context, year int, month time.Month) error
	LockPeriodBy(ctx context.Context, year int, month time.Month, actor string) error
	UnlockPeriod(ctx context.Context, year int, month time.Month, actor, reason string) error

	// IsPeriodLocked reads the committed state, so locks taken by other processes are visible.
	IsPeriodLocked(ctx context.Context, year int, month time.Month) (bool, error)

	// PeriodAuditLog returns the rendered audit lines for a period in append order.
	PeriodAuditLog(ctx context.Context, year int, month time.Month) ([]string, error)
	PeriodStatus(ctx context.Context, year int, month time.Month) (*domain.PeriodStatus, error)
}

// OpeningBalanceSvc manages administrative opening balances
type OpeningBalanceSvc interface {
	SetOpeningBalance(ctx context.Context, accountCode string, amount decimal.Decimal, asOf time.Time) error
	ListOpeningBalances(ctx context.Context) ([]domain.OpeningBalance, error)
}

// LedgerSvcFacade combines every operation of the ledger service
type LedgerSvcFacade interface {
	JournalPosterSvc
	JournalReaderSvc
	PeriodLockSvc
	OpeningBalanceSvc
}
