package dto

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	"github.com/SscSPs/general_ledger/internal/utils/accounting"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    string          `json:"category,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	From     *Date                     `json:"from,omitempty"`
	To       Date                      `json:"to"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Balanced bool                      `json:"balanced"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse rounds every figure to cents for display.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{To: NewDate(r.To), Balanced: r.Balanced}
	if !r.From.IsZero() {
		from := NewDate(r.From)
		resp.From = &from
	}
	resp.Rows = make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Category:    string(row.Category),
			Debit:       domain.RoundMoney(row.Debit),
			Credit:      domain.RoundMoney(row.Credit),
		}
	}
	resp.Totals.Debit = domain.RoundMoney(r.TotalDebits)
	resp.Totals.Credit = domain.RoundMoney(r.TotalCredits)
	return resp
}

// AccountBalanceResponse is the balance of one account as of a date.
type AccountBalanceResponse struct {
	AccountCode string          `json:"accountCode"`
	AsOf        Date            `json:"asOf"`
	Balance     decimal.Decimal `json:"balance"`        // debit positive
	Natural     decimal.Decimal `json:"naturalBalance"` // positive when on the account's normal side
	Category    string          `json:"category,omitempty"`
}

// ToAccountBalanceResponse fills the natural-sign figure when the category is known.
func ToAccountBalanceResponse(code string, asOf Date, balance decimal.Decimal, category domain.AccountCategory) AccountBalanceResponse {
	resp := AccountBalanceResponse{AccountCode: code, AsOf: asOf, Balance: balance, Category: string(category)}
	if natural, err := accounting.NaturalBalance(balance, category); err == nil {
		resp.Natural = natural
	}
	return resp
}
