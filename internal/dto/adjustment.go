package dto

import (
	"github.com/shopspring/decimal"
)

// CreateAdjustingEntryRequest describes a single debit / single credit adjustment.
type CreateAdjustingEntryRequest struct {
	Date          Date            `json:"date"`
	Description   string          `json:"description" binding:"required"`
	DebitAccount  string          `json:"debitAccount" binding:"required"`
	DebitName     string          `json:"debitName"`
	CreditAccount string          `json:"creditAccount" binding:"required"`
	CreditName    string          `json:"creditName"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
}

// CreateClosingEntriesRequest asks for period-end closing entries.
type CreateClosingEntriesRequest struct {
	Date                    Date   `json:"date"`
	RetainedEarningsAccount string `json:"retainedEarningsAccount" binding:"required"`
}

// ClosingEntriesResponse lists the entries a closing run posted.
type ClosingEntriesResponse struct {
	Journals []JournalResponse `json:"journals"`
}
