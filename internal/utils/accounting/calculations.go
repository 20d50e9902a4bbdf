package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// NaturalBalance converts a debit-positive balance into the sign convention of the
// account's normal side, so a credit balance on a revenue account reads positive.
// ASSET/EXPENSE -> unchanged
// LIABILITY/EQUITY/REVENUE -> negated
func NaturalBalance(debitPositive decimal.Decimal, category domain.AccountCategory) (decimal.Decimal, error) {
	switch category {
	case domain.Asset, domain.Expense:
		return debitPositive, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return debitPositive.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account category '%s'", category)
	}
}
