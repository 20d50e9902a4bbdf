package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

// MoneyScale is the number of fractional digits money is displayed and converted with.
const MoneyScale int32 = 2

// RoundMoney rounds half-up to MoneyScale places (100.005 becomes 100.01).
// Arithmetic stays at full precision; call this only when a value leaves the ledger.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// ConvertCurrency multiplies amount by rate and rounds the product to cents.
// It carries no state and no rate policy of its own.
func ConvertCurrency(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(rate))
}

// EqualAtCents reports whether a and b are equal once rounded to cents.
func EqualAtCents(a, b decimal.Decimal) bool {
	return RoundMoney(a).Equal(RoundMoney(b))
}

// ParseMoney parses a decimal string without rounding it.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, s)
	}
	return d, nil
}
