package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance is the persisted opening balance of one account.
type OpeningBalance struct {
	AccountCode string          `json:"accountCode"` // Primary Key
	Amount      decimal.Decimal `json:"amount"`
	AsOfDate    time.Time       `json:"asOfDate"`
	AuditFields
}
