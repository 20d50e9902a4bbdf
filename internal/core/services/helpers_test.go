package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/core/services"
	"github.com/SscSPs/general_ledger/internal/repositories/database/memory"
)

const (
	cash             = "1000"
	retainedEarnings = "3100"
	revenue          = "4000"
	expense          = "5000"
)

var fixedNow = time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func transfer(t *testing.T, date time.Time, debit, credit, amount string) domain.JournalEntry {
	t.Helper()
	entry, err := domain.NewEntry(date, "transfer").
		Debit(debit, "", amt(amount)).
		Credit(credit, "", amt(amount)).
		Build()
	require.NoError(t, err)
	return entry
}

func newLedger(t *testing.T, repos portsrepo.RepositoryProvider, options ...services.LedgerServiceOption) portssvc.LedgerSvcFacade {
	t.Helper()
	options = append([]services.LedgerServiceOption{services.WithLedgerClock(func() time.Time { return fixedNow })}, options...)
	ledger, err := services.NewLedgerService(context.Background(), repos.JournalRepo, repos.PeriodRepo, repos.OpeningBalanceRepo, options...)
	require.NoError(t, err)
	return ledger
}

func testChart(t *testing.T) *domain.ChartOfAccounts {
	t.Helper()
	chart, err := domain.NewChartOfAccounts([]domain.Account{
		{Code: cash, Name: "Cash", Category: domain.Asset, IsActive: true},
		{Code: retainedEarnings, Name: "Retained Earnings", Category: domain.Equity, IsActive: true},
		{Code: revenue, Name: "Sales", Category: domain.Revenue, IsActive: true},
		{Code: "4100", Name: "Services", Category: domain.Revenue, IsActive: true},
		{Code: expense, Name: "Rent", Category: domain.Expense, IsActive: true},
	})
	require.NoError(t, err)
	return chart
}

func freshRepos() portsrepo.RepositoryProvider {
	return memory.NewRepositoryProvider()
}
