package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
)

const defaultBalanceCacheTTL = 10 * time.Minute

// trialBalanceService folds a consistent journal prefix into balances. It never writes to the journal.
type trialBalanceService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	openingRepo portsrepo.OpeningBalanceRepositoryFacade
	cache       portsrepo.BalanceCache
	cacheTTL    time.Duration
	accounts    domain.AccountLookup
	classifier  domain.AccountClassifier
}

// TrialBalanceServiceOption is a functional option for configuring the trial balance service
type TrialBalanceServiceOption func(*trialBalanceService)

// WithBalanceCache memoises folded balances per (range, snapshot size, opening balances).
func WithBalanceCache(cache portsrepo.BalanceCache, ttl time.Duration) TrialBalanceServiceOption {
	return func(s *trialBalanceService) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithReportChart supplies account names and categories for report rows.
func WithReportChart(lookup domain.AccountLookup, classifier domain.AccountClassifier) TrialBalanceServiceOption {
	return func(s *trialBalanceService) {
		s.accounts = lookup
		s.classifier = classifier
	}
}

// NewTrialBalanceService creates a new trial balance service with the provided options
func NewTrialBalanceService(journalRepo portsrepo.JournalReader, openingRepo portsrepo.OpeningBalanceRepositoryFacade, options ...TrialBalanceServiceOption) portssvc.TrialBalanceSvc {
	svc := &trialBalanceService{
		journalRepo: journalRepo,
		openingRepo: openingRepo,
		cacheTTL:    defaultBalanceCacheTTL,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TrialBalanceSvc = (*trialBalanceService)(nil)

// GenerateTrialBalance implements portssvc.TrialBalanceSvc
func (s *trialBalanceService) GenerateTrialBalance(ctx context.Context, asOf time.Time) (domain.TrialBalance, error) {
	return s.GenerateTrialBalanceBetween(ctx, time.Time{}, asOf)
}

// GenerateTrialBalanceBetween implements portssvc.TrialBalanceSvc
func (s *trialBalanceService) GenerateTrialBalanceBetween(ctx context.Context, from, to time.Time) (domain.TrialBalance, error) {
	if to.IsZero() {
		return domain.TrialBalance{}, fmt.Errorf("%w: trial balance end date is required", apperrors.ErrValidation)
	}
	to = domain.DateOf(to)
	if !from.IsZero() {
		from = domain.DateOf(from)
		if from.After(to) {
			return domain.TrialBalance{}, fmt.Errorf("%w: trial balance start date is after end date", apperrors.ErrValidation)
		}
	}

	// everything below reads the prefix [1, snapshot]; later posts are invisible
	snapshot, err := s.journalRepo.LastSequence(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read journal sequence")
		return domain.TrialBalance{}, fmt.Errorf("failed to read journal sequence: %w", err)
	}
	openings, err := s.openingRepo.ListOpeningBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read opening balances")
		return domain.TrialBalance{}, fmt.Errorf("failed to read opening balances: %w", err)
	}

	key := balanceCacheKey(from, to, snapshot, openings)
	if s.cache != nil {
		balances, found, err := s.cache.GetBalances(ctx, key)
		if err != nil {
			s.LogWarn(ctx, err, "Balance cache read failed, folding journal", slog.String("cache_key", key))
		} else if found {
			s.LogDebug(ctx, "Trial balance served from cache", slog.String("cache_key", key))
			return domain.NewTrialBalance(from, to, int(snapshot), balances), nil
		}
	}

	entries, err := s.journalRepo.FindJournals(ctx, portsrepo.JournalFilter{MaxSequence: snapshot, From: from, To: to})
	if err != nil {
		s.LogError(ctx, err, "Failed to read journal snapshot", slog.Int64("snapshot", snapshot))
		return domain.TrialBalance{}, fmt.Errorf("failed to read journal: %w", err)
	}
	balances := foldBalances(openings, entries)

	if s.cache != nil {
		if err := s.cache.SetBalances(ctx, key, balances, s.cacheTTL); err != nil {
			s.LogWarn(ctx, err, "Balance cache write failed", slog.String("cache_key", key))
		}
	}

	s.LogDebug(ctx, "Trial balance generated",
		slog.Int64("snapshot", snapshot),
		slog.Int("entries", len(entries)),
		slog.Int("accounts", len(balances)))
	return domain.NewTrialBalance(from, to, int(snapshot), balances), nil
}

// GetBalance implements portssvc.TrialBalanceSvc
func (s *trialBalanceService) GetBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	tb, err := s.GenerateTrialBalance(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return tb.Balance(accountCode), nil
}

// GetDisplayBalance implements portssvc.TrialBalanceSvc
func (s *trialBalanceService) GetDisplayBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	b, err := s.GetBalance(ctx, accountCode, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.RoundMoney(b), nil
}

// GenerateReport implements portssvc.TrialBalanceSvc
func (s *trialBalanceService) GenerateReport(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error) {
	tb, err := s.GenerateTrialBalanceBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	report := tb.Report(s.accounts, s.classifier)
	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("to", report.To.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.Balanced))
	return &report, nil
}

// foldBalances seeds every opening balance and then adds debits and subtracts credits.
func foldBalances(openings []domain.OpeningBalance, entries []domain.JournalEntry) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(openings))
	for _, ob := range openings {
		balances[ob.AccountCode] = balances[ob.AccountCode].Add(ob.Amount)
	}
	for _, e := range entries {
		for _, l := range e.Lines {
			balances[l.AccountCode] = balances[l.AccountCode].Add(l.SignedAmount())
		}
	}
	return balances
}

// balanceCacheKey identifies a fold by its inputs: date range, journal prefix and opening balances.
func balanceCacheKey(from, to time.Time, snapshot int64, openings []domain.OpeningBalance) string {
	sorted := make([]domain.OpeningBalance, len(openings))
	copy(sorted, openings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AccountCode < sorted[j].AccountCode })

	h := fnv.New64a()
	for _, ob := range sorted {
		fmt.Fprintf(h, "%s|%s|%s;", ob.AccountCode, ob.Amount.String(), ob.AsOfDate.Format(time.DateOnly))
	}

	fromKey := "-"
	if !from.IsZero() {
		fromKey = from.Format(time.DateOnly)
	}
	return fmt.Sprintf("tb:%s:%s:%d:%x", fromKey, to.Format(time.DateOnly), snapshot, h.Sum64())
}
