package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// TrialBalanceSvc computes balances on demand from a journal snapshot
type TrialBalanceSvc interface {
	// GenerateTrialBalance folds every entry dated on or before asOf.
	GenerateTrialBalance(ctx context.Context, asOf time.Time) (domain.TrialBalance, error)

	// GenerateTrialBalanceBetween folds entries dated in [from, to]. A zero from is unbounded.
	GenerateTrialBalanceBetween(ctx context.Context, from, to time.Time) (domain.TrialBalance, error)

	GetBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)

	// GetDisplayBalance is GetBalance rounded half-up to cents.
	GetDisplayBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)

	GenerateReport(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error)
}
