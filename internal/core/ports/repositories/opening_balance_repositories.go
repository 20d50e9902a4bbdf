package repositories

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// OpeningBalanceRepositoryFacade stores one opening balance per account.
type OpeningBalanceRepositoryFacade interface {
	// UpsertOpeningBalance replaces any existing opening balance for the account.
	UpsertOpeningBalance(ctx context.Context, balance domain.OpeningBalance) error

	// ListOpeningBalances returns all opening balances ordered by account code.
	ListOpeningBalances(ctx context.Context) ([]domain.OpeningBalance, error)
}
