package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
)

var nov15 = time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name       string
		entry      domain.JournalEntry
		wantIs     error
		wantInText string
	}{
		{
			name: "balanced two line entry",
			entry: domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
				{AccountCode: "1000", Amount: amt("500.00"), Side: domain.Debit},
				{AccountCode: "4000", Amount: amt("500.00"), Side: domain.Credit},
			}},
		},
		{
			name: "balanced at full precision",
			entry: domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
				{AccountCode: "1000", Amount: amt("0.33333"), Side: domain.Debit},
				{AccountCode: "1100", Amount: amt("0.66667"), Side: domain.Debit},
				{AccountCode: "4000", Amount: amt("1.00000"), Side: domain.Credit},
			}},
		},
		{
			name: "debits exceed credits",
			entry: domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
				{AccountCode: "1000", Amount: amt("500.00"), Side: domain.Debit},
				{AccountCode: "4000", Amount: amt("400.00"), Side: domain.Credit},
			}},
			wantIs:     domain.ErrUnbalancedEntry,
			wantInText: "balanced",
		},
		{
			name: "sub cent difference is still unbalanced",
			entry: domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
				{AccountCode: "1000", Amount: amt("100.001"), Side: domain.Debit},
				{AccountCode: "4000", Amount: amt("100.00"), Side: domain.Credit},
			}},
			wantIs: domain.ErrUnbalancedEntry,
		},
		{
			name: "credit side missing",
			entry: domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
				{AccountCode: "1000", Amount: amt("10"), Side: domain.Debit},
			}},
			wantIs: domain.ErrUnbalancedEntry,
		},
		{
			name:   "no lines",
			entry:  domain.JournalEntry{Date: nov15},
			wantIs: domain.ErrUnbalancedEntry,
		},
		{
			name: "zero amount",
			entry: domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
				{AccountCode: "1000", Amount: decimal.Zero, Side: domain.Debit},
				{AccountCode: "4000", Amount: decimal.Zero, Side: domain.Credit},
			}},
			wantIs: apperrors.ErrValidation,
		},
		{
			name: "blank account code",
			entry: domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
				{AccountCode: " ", Amount: amt("1"), Side: domain.Debit},
				{AccountCode: "4000", Amount: amt("1"), Side: domain.Credit},
			}},
			wantIs: apperrors.ErrValidation,
		},
		{
			name: "missing date",
			entry: domain.JournalEntry{Lines: []domain.JournalLine{
				{AccountCode: "1000", Amount: amt("1"), Side: domain.Debit},
				{AccountCode: "4000", Amount: amt("1"), Side: domain.Credit},
			}},
			wantIs: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateEntry(tt.entry)
			if tt.wantIs == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			if tt.wantInText != "" {
				assert.Contains(t, err.Error(), tt.wantInText)
			}
		})
	}
}

func TestUnbalancedEntryError_Details(t *testing.T) {
	err := domain.ValidateEntry(domain.JournalEntry{Date: nov15, Lines: []domain.JournalLine{
		{AccountCode: "1000", Amount: amt("500.00"), Side: domain.Debit},
		{AccountCode: "4000", Amount: amt("400.00"), Side: domain.Credit},
	}})

	var unbalanced *domain.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, amt("500").Equal(unbalanced.Debits))
	assert.True(t, amt("400").Equal(unbalanced.Credits))
}

func TestJournalNumber(t *testing.T) {
	assert.Equal(t, "JE-0001", domain.FormatJournalNumber(1))
	assert.Equal(t, "JE-0042", domain.FormatJournalNumber(42))
	assert.Equal(t, "JE-12345", domain.FormatJournalNumber(12345))

	seq, err := domain.ParseJournalNumber("JE-0042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)

	for _, bad := range []string{"", "JE-", "JE-abc", "XX-0001", "JE-0000"} {
		_, err := domain.ParseJournalNumber(bad)
		assert.ErrorIs(t, err, apperrors.ErrValidation, bad)
	}
}

func TestJournalEntry_CloneDoesNotAlias(t *testing.T) {
	e := domain.JournalEntry{Lines: []domain.JournalLine{{AccountCode: "1000", Amount: amt("1"), Side: domain.Debit}}}
	c := e.Clone()
	c.Lines[0].AccountCode = "9999"
	assert.Equal(t, "1000", e.Lines[0].AccountCode)
}

func TestJournalLine_Reversed(t *testing.T) {
	l := domain.JournalLine{AccountCode: "1000", Amount: amt("5"), Side: domain.Debit}
	r := l.Reversed()
	assert.Equal(t, domain.Credit, r.Side)
	assert.True(t, amt("-5").Equal(r.SignedAmount()))
	assert.True(t, amt("5").Equal(l.SignedAmount()))
}
