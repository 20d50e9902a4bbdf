package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
)

const (
	closeRevenueDescription = "Close revenue accounts"
	closeExpenseDescription = "Close expense accounts"

	defaultRevenueName          = "Revenue"
	defaultExpenseName          = "Expense"
	defaultRetainedEarningsName = "Retained Earnings"
)

// journalPosterReader is the slice of the ledger the adjustment engine needs.
type journalPosterReader interface {
	portssvc.JournalPosterSvc
	GetJournal(ctx context.Context, journalNumber string) (*domain.JournalEntry, error)
}

// adjustmentService synthesises entries from existing ones and posts them
// through the ledger, so every balance and lock check still applies.
type adjustmentService struct {
	BaseService
	ledger       journalPosterReader
	trialBalance portssvc.TrialBalanceSvc
	classifier   domain.AccountClassifier
	accounts     domain.AccountLookup
}

// AdjustmentServiceOption is a functional option for configuring the adjustment service
type AdjustmentServiceOption func(*adjustmentService)

// WithClassifier sets how closing entries decide which accounts are revenue or expense.
func WithClassifier(classifier domain.AccountClassifier) AdjustmentServiceOption {
	return func(s *adjustmentService) {
		if classifier != nil {
			s.classifier = classifier
		}
	}
}

// WithAccountNames fills closing line names from a chart of accounts.
func WithAccountNames(lookup domain.AccountLookup) AdjustmentServiceOption {
	return func(s *adjustmentService) {
		s.accounts = lookup
	}
}

// NewAdjustmentService defaults to the leading-digit classifier.
func NewAdjustmentService(ledger journalPosterReader, trialBalance portssvc.TrialBalanceSvc, options ...AdjustmentServiceOption) portssvc.AdjustmentSvc {
	svc := &adjustmentService{
		ledger:       ledger,
		trialBalance: trialBalance,
		classifier:   domain.LeadingDigitClassifier{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AdjustmentSvc = (*adjustmentService)(nil)

// ReverseJournal implements portssvc.AdjustmentSvc
func (s *adjustmentService) ReverseJournal(ctx context.Context, journalNumber string, reversalDate time.Time, reason string) (*domain.JournalEntry, error) {
	original, err := s.ledger.GetJournal(ctx, journalNumber)
	if err != nil {
		s.LogWarn(ctx, err, "Cannot reverse journal", slog.String("journal_number", journalNumber))
		return nil, err
	}

	builder := domain.NewEntry(reversalDate, fmt.Sprintf("Reversal of %s: %s", journalNumber, reason)).
		Reverses(journalNumber)
	for _, line := range original.Lines {
		builder.Line(line.Reversed())
	}
	entry, err := builder.Build()
	if err != nil {
		return nil, err
	}

	posted, err := s.ledger.PostEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_number", journalNumber),
		slog.String("reversal_number", posted.JournalNumber))
	return posted, nil
}

// CreateAdjustingEntry implements portssvc.AdjustmentSvc
func (s *adjustmentService) CreateAdjustingEntry(ctx context.Context, req dto.CreateAdjustingEntryRequest) (*domain.JournalEntry, error) {
	entry, err := domain.NewEntry(req.Date.Time, "Adjusting: "+req.Description).
		Debit(req.DebitAccount, req.DebitName, req.Amount).
		Credit(req.CreditAccount, req.CreditName, req.Amount).
		Adjusting().
		Build()
	if err != nil {
		return nil, err
	}
	return s.ledger.PostEntry(ctx, entry)
}

// CreateClosingEntries implements portssvc.AdjustmentSvc. It returns the entries
// posted before any failure together with the error.
func (s *adjustmentService) CreateClosingEntries(ctx context.Context, date time.Time, retainedEarningsAccount string) ([]domain.JournalEntry, error) {
	retainedEarningsAccount = strings.TrimSpace(retainedEarningsAccount)
	if retainedEarningsAccount == "" {
		return nil, fmt.Errorf("%w: retained earnings account is required", apperrors.ErrValidation)
	}

	tb, err := s.trialBalance.GenerateTrialBalance(ctx, date)
	if err != nil {
		return nil, err
	}

	var revenue, expense []domain.JournalLine
	revenueTotal, expenseTotal := decimal.Zero, decimal.Zero
	for _, code := range tb.Accounts() {
		if code == retainedEarningsAccount {
			continue
		}
		category, ok := s.classifier.Classify(code)
		if !ok {
			continue
		}
		balance := tb.Balance(code)
		switch {
		case category == domain.Revenue && balance.IsNegative():
			revenue = append(revenue, domain.JournalLine{
				AccountCode: code,
				AccountName: s.accountName(code, defaultRevenueName),
				Amount:      balance.Abs(),
				Side:        domain.Debit,
			})
			revenueTotal = revenueTotal.Add(balance.Abs())
		case category == domain.Expense && balance.IsPositive():
			expense = append(expense, domain.JournalLine{
				AccountCode: code,
				AccountName: s.accountName(code, defaultExpenseName),
				Amount:      balance,
				Side:        domain.Credit,
			})
			expenseTotal = expenseTotal.Add(balance)
		}
	}

	reName := s.accountName(retainedEarningsAccount, defaultRetainedEarningsName)
	var posted []domain.JournalEntry

	if !revenueTotal.IsZero() {
		builder := domain.NewEntry(date, closeRevenueDescription)
		for _, l := range revenue {
			builder.Line(l)
		}
		entry, err := builder.Credit(retainedEarningsAccount, reName, revenueTotal).Build()
		if err != nil {
			return posted, err
		}
		result, err := s.ledger.PostEntry(ctx, entry)
		if err != nil {
			return posted, fmt.Errorf("failed to post revenue closing entry: %w", err)
		}
		posted = append(posted, *result)
	}

	if !expenseTotal.IsZero() {
		builder := domain.NewEntry(date, closeExpenseDescription).
			Debit(retainedEarningsAccount, reName, expenseTotal)
		for _, l := range expense {
			builder.Line(l)
		}
		entry, err := builder.Build()
		if err != nil {
			return posted, err
		}
		result, err := s.ledger.PostEntry(ctx, entry)
		if err != nil {
			return posted, fmt.Errorf("failed to post expense closing entry: %w", err)
		}
		posted = append(posted, *result)
	}

	s.LogInfo(ctx, "Closing entries created",
		slog.String("date", domain.DateOf(date).Format(time.DateOnly)),
		slog.String("retained_earnings", retainedEarningsAccount),
		slog.Int("entries", len(posted)),
		slog.String("revenue_closed", revenueTotal.String()),
		slog.String("expense_closed", expenseTotal.String()))
	return posted, nil
}

func (s *adjustmentService) accountName(code, fallback string) string {
	if s.accounts != nil {
		if acc, ok := s.accounts.Lookup(code); ok && acc.Name != "" {
			return acc.Name
		}
	}
	return fallback
}
