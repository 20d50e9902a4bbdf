package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

func TestTrialBalance(t *testing.T) {
	tb := domain.NewTrialBalance(time.Time{}, nov15, 2, map[string]decimal.Decimal{
		"1000": amt("800.00"),
		"4000": amt("-1000.00"),
		"6000": amt("200.00"),
	})

	assert.True(t, amt("800").Equal(tb.Balance("1000")))
	assert.True(t, decimal.Zero.Equal(tb.Balance("9999")))
	assert.True(t, amt("1000").Equal(tb.TotalDebits()))
	assert.True(t, amt("1000").Equal(tb.TotalCredits()))
	assert.True(t, tb.IsBalanced())
	assert.Equal(t, []string{"1000", "4000", "6000"}, tb.Accounts())

	chart, err := domain.NewChartOfAccounts([]domain.Account{
		{Code: "1000", Name: "Cash", Category: domain.Asset},
	})
	require.NoError(t, err)

	rows := tb.Rows(chart, domain.LeadingDigitClassifier{})
	require.Len(t, rows, 3)
	assert.Equal(t, "Cash", rows[0].AccountName)
	assert.Equal(t, domain.Asset, rows[0].Category)
	assert.True(t, amt("800").Equal(rows[0].Debit))
	assert.True(t, amt("1000").Equal(rows[1].Credit))
	assert.Equal(t, domain.Revenue, rows[1].Category)
	assert.True(t, decimal.Zero.Equal(rows[1].Debit))
}

func TestTrialBalance_BalancesIsACopy(t *testing.T) {
	tb := domain.NewTrialBalance(time.Time{}, nov15, 0, map[string]decimal.Decimal{"1000": amt("1")})
	m := tb.Balances()
	m["1000"] = amt("99")
	assert.True(t, amt("1").Equal(tb.Balance("1000")))
}
