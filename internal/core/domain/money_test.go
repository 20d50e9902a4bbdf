package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "half rounds up", in: "100.005", want: "100.01"},
		{name: "below half rounds down", in: "100.004", want: "100"},
		{name: "negative half rounds away from zero", in: "-100.005", want: "-100.01"},
		{name: "already at cents", in: "12.34", want: "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.RoundMoney(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestConvertCurrency(t *testing.T) {
	got := domain.ConvertCurrency(decimal.RequireFromString("100.00"), decimal.RequireFromString("3.6725"))
	assert.Equal(t, "367.25", got.StringFixed(2))

	got = domain.ConvertCurrency(decimal.RequireFromString("10.01"), decimal.RequireFromString("0.5"))
	assert.Equal(t, "5.01", got.StringFixed(2))
}

func TestEqualAtCents(t *testing.T) {
	assert.True(t, domain.EqualAtCents(decimal.RequireFromString("10.004"), decimal.RequireFromString("10.00")))
	assert.False(t, domain.EqualAtCents(decimal.RequireFromString("10.005"), decimal.RequireFromString("10.00")))
}

func TestParseMoney(t *testing.T) {
	d, err := domain.ParseMoney("1234.56789")
	require.NoError(t, err)
	assert.Equal(t, "1234.56789", d.String())

	_, err = domain.ParseMoney("12,00")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
