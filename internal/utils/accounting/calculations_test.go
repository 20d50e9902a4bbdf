package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

func TestNaturalBalance(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		name     string
		side     domain.EntrySide
		category domain.AccountCategory
		want     decimal.Decimal
		wantErr  bool
	}{
		{"debit asset", domain.Debit, domain.Asset, hundred, false},
		{"credit asset", domain.Credit, domain.Asset, hundred.Neg(), false},
		{"debit expense", domain.Debit, domain.Expense, hundred, false},
		{"credit revenue", domain.Credit, domain.Revenue, hundred, false},
		{"debit liability", domain.Debit, domain.Liability, hundred.Neg(), false},
		{"credit equity", domain.Credit, domain.Equity, hundred, false},
		{"unknown category", domain.Debit, "", decimal.Zero, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := domain.JournalLine{AccountCode: "X", Amount: hundred, Side: tt.side}
			got, err := NaturalBalance(line.SignedAmount(), tt.category)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}
