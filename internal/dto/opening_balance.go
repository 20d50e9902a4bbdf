package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// SetOpeningBalanceRequest sets an account's opening balance (debit positive).
type SetOpeningBalanceRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	AsOfDate Date            `json:"asOfDate"`
}

// OpeningBalanceResponse is one stored opening balance.
type OpeningBalanceResponse struct {
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	AsOfDate    Date            `json:"asOfDate"`
}

func ToOpeningBalanceResponses(balances []domain.OpeningBalance) []OpeningBalanceResponse {
	out := make([]OpeningBalanceResponse, len(balances))
	for i, ob := range balances {
		out[i] = OpeningBalanceResponse{
			AccountCode: ob.AccountCode,
			Amount:      ob.Amount,
			AsOfDate:    NewDate(ob.AsOfDate),
		}
	}
	return out
}
