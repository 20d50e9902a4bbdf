package utils

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// FormatMoney formats an amount with exactly two fractional digits, rounding half-up.
// Example: 100.005 returns "100.01"
// Example: -3 returns "-3.00"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(domain.MoneyScale)
}
