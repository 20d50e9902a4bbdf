package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo:        newPgxJournalRepository(dbPool),
		PeriodRepo:         newPgxPeriodRepository(dbPool),
		OpeningBalanceRepo: newPgxOpeningBalanceRepository(dbPool),
		RecurringRepo:      newPgxRecurringRepository(dbPool),
	}
}
