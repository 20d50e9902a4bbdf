package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

func TestEntryBuilder(t *testing.T) {
	t.Run("builds a balanced draft", func(t *testing.T) {
		entry, err := domain.NewEntry(time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC), "Sale").
			Debit("1000", "Cash", amt("250.00")).
			Credit("4000", "Revenue", amt("250.00")).
			Build()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), entry.Date)
		assert.Equal(t, domain.Draft, entry.Status)
		assert.Len(t, entry.Lines, 2)
		assert.Empty(t, entry.JournalNumber)
	})

	t.Run("refuses a single sided entry", func(t *testing.T) {
		_, err := domain.NewEntry(nov15, "Half").Debit("1000", "Cash", amt("1")).Build()
		assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)
	})

	t.Run("refuses unequal totals", func(t *testing.T) {
		_, err := domain.NewEntry(nov15, "Off").
			Debit("1000", "Cash", amt("500.00")).
			Credit("4000", "Revenue", amt("400.00")).
			Build()
		assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)
	})

	t.Run("adjusting flag", func(t *testing.T) {
		entry, err := domain.NewEntry(nov15, "Accrual").
			Debit("6000", "Expense", amt("10")).
			Credit("2100", "Accrued", amt("10")).
			Adjusting().
			Build()
		require.NoError(t, err)
		assert.True(t, entry.IsAdjusting)
	})
}
