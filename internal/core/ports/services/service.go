package services

import "github.com/SscSPs/general_ledger/internal/core/domain"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Ledger       LedgerSvcFacade
	TrialBalance TrialBalanceSvc
	Adjustment   AdjustmentSvc
	Recurring    RecurringSvc

	// Classifier resolves account categories for presentation.
	Classifier domain.AccountClassifier
}
