package memory

import (
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider returns fresh process-local stores. Nothing survives a restart.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	periods := newPeriodRepository()
	recurring := newRecurringRepository()
	return portsrepo.RepositoryProvider{
		JournalRepo:        newJournalRepository(periods, recurring),
		PeriodRepo:         periods,
		OpeningBalanceRepo: newOpeningBalanceRepository(),
		RecurringRepo:      recurring,
	}
}
