package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

// OpeningBalance seeds an account's running balance ahead of any journal posting.
// Amount follows the trial balance sign convention (debit positive).
type OpeningBalance struct {
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	AsOfDate    time.Time       `json:"asOfDate"`
	AuditFields
}

func (o OpeningBalance) Validate() error {
	if strings.TrimSpace(o.AccountCode) == "" {
		return fmt.Errorf("%w: opening balance account code is required", apperrors.ErrValidation)
	}
	if o.AsOfDate.IsZero() {
		return fmt.Errorf("%w: opening balance as-of date is required", apperrors.ErrValidation)
	}
	return nil
}
