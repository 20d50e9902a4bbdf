package services

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/platform/config"
)

// NewServiceContainer wires the ledger services over repos. chart may be nil,
// in which case classification falls back to the leading digit of the code.
func NewServiceContainer(
	ctx context.Context,
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	chart *domain.ChartOfAccounts,
	ledgerOptions ...LedgerServiceOption,
) (*portssvc.ServiceContainer, error) {
	classifier := domain.FirstMatch(chart, domain.LeadingDigitClassifier{})

	if cfg.ValidateAccounts && chart != nil {
		ledgerOptions = append(ledgerOptions, WithAccountValidation(chart))
	}
	ledger, err := NewLedgerService(ctx, repos.JournalRepo, repos.PeriodRepo, repos.OpeningBalanceRepo, ledgerOptions...)
	if err != nil {
		return nil, err
	}

	tbOptions := []TrialBalanceServiceOption{WithReportChart(chart, classifier)}
	if repos.BalanceCache != nil {
		tbOptions = append(tbOptions, WithBalanceCache(repos.BalanceCache, cfg.BalanceCacheTTL))
	}
	trialBalance := NewTrialBalanceService(repos.JournalRepo, repos.OpeningBalanceRepo, tbOptions...)

	return &portssvc.ServiceContainer{
		Ledger:       ledger,
		TrialBalance: trialBalance,
		Adjustment: NewAdjustmentService(ledger, trialBalance,
			WithClassifier(classifier),
			WithAccountNames(chart),
		),
		Recurring:  NewRecurringService(repos.RecurringRepo, ledger),
		Classifier: classifier,
	}, nil
}
