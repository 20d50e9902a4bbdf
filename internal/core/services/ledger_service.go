package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/utils/pagination"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100

	// appendAttempts bounds how often a sequence taken by another writer is re-read.
	appendAttempts = 3
)

// ledgerService owns the journal sequence and the posting critical section.
// Every write goes through mu. Period locks live only in the store, which checks
// them inside the append, so locks taken by another process are honoured.
type ledgerService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	periodRepo  portsrepo.PeriodLockRepositoryFacade
	openingRepo portsrepo.OpeningBalanceRepositoryFacade
	accounts    domain.AccountLookup // nil disables account validation
	onPosted    []func(domain.JournalEntry)

	mu      sync.Mutex
	lastSeq int64
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithAccountValidation rejects lines whose account code is unknown to lookup.
// Empty account names are filled from lookup as well.
func WithAccountValidation(lookup domain.AccountLookup) LedgerServiceOption {
	return func(s *ledgerService) {
		s.accounts = lookup
	}
}

// WithLedgerClock overrides time.Now for audit timestamps.
func WithLedgerClock(clock func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.clock = clock
	}
}

// WithPostedListener registers fn to run after each successful post, outside the critical section.
func WithPostedListener(fn func(domain.JournalEntry)) LedgerServiceOption {
	return func(s *ledgerService) {
		s.onPosted = append(s.onPosted, fn)
	}
}

// NewLedgerService loads the current sequence from the journal store.
func NewLedgerService(
	ctx context.Context,
	journalRepo portsrepo.JournalRepositoryFacade,
	periodRepo portsrepo.PeriodLockRepositoryFacade,
	openingRepo portsrepo.OpeningBalanceRepositoryFacade,
	options ...LedgerServiceOption,
) (portssvc.LedgerSvcFacade, error) {
	svc := &ledgerService{
		journalRepo: journalRepo,
		periodRepo:  periodRepo,
		openingRepo: openingRepo,
	}
	for _, option := range options {
		option(svc)
	}

	lastSeq, err := journalRepo.LastSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal sequence: %w", err)
	}
	svc.lastSeq = lastSeq

	svc.LogInfo(ctx, "Ledger loaded",
		slog.Int64("last_sequence", lastSeq),
		slog.Bool("validate_accounts", svc.accounts != nil))
	return svc, nil
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Post implements portssvc.JournalPosterSvc
func (s *ledgerService) Post(ctx context.Context, entry domain.JournalEntry) (string, error) {
	posted, err := s.PostEntry(ctx, entry)
	if err != nil {
		return "", err
	}
	return posted.JournalNumber, nil
}

// PostEntry implements portssvc.JournalPosterSvc
func (s *ledgerService) PostEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	draft := entry.Clone()
	draft.Date = domain.DateOf(draft.Date)
	draft.JournalNumber = ""
	draft.Sequence = 0

	if err := domain.ValidateEntry(draft); err != nil {
		s.LogWarn(ctx, err, "Journal entry rejected", slog.String("description", draft.Description))
		return nil, err
	}
	if err := s.checkAccounts(draft.Lines); err != nil {
		s.LogWarn(ctx, err, "Journal entry rejected", slog.String("description", draft.Description))
		return nil, err
	}
	s.fillAccountNames(draft.Lines)

	posted, err := s.appendLocked(ctx, draft)
	if err != nil {
		return nil, err
	}

	for _, fn := range s.onPosted {
		fn(posted.Clone())
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_number", posted.JournalNumber),
		slog.String("period", posted.Period().String()),
		slog.Int("line_count", len(posted.Lines)))
	result := posted.Clone()
	return &result, nil
}

// appendLocked runs numbering and the append as one critical section. The store
// checks the period lock and records any recurring occurrence in the same write.
// lastSeq only moves after the store accepted the entry.
func (s *ledgerService) appendLocked(ctx context.Context, draft domain.JournalEntry) (domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for attempt := 1; ; attempt++ {
		seq := s.lastSeq + 1
		candidate := draft
		candidate.Sequence = seq
		candidate.JournalNumber = domain.FormatJournalNumber(seq)
		candidate.Status = domain.Posted
		candidate.AuditFields = domain.NewAuditFields(now, systemActor)
		if draft.Occurrence != nil {
			occ := *draft.Occurrence
			occ.JournalNumber = candidate.JournalNumber
			candidate.Occurrence = &occ
		}

		err := s.journalRepo.AppendJournal(ctx, candidate)
		if err == nil {
			s.lastSeq = seq
			return candidate, nil
		}
		if errors.Is(err, domain.ErrPeriodLocked) {
			s.LogWarn(ctx, err, "Journal entry rejected", slog.String("period", draft.Period().String()))
			return domain.JournalEntry{}, err
		}
		if errors.Is(err, domain.ErrOccurrenceProcessed) {
			s.LogInfo(ctx, "Recurring occurrence already posted", slog.String("occurrence", candidate.Occurrence.Key()))
			return domain.JournalEntry{}, err
		}
		if !errors.Is(err, apperrors.ErrDuplicate) || attempt == appendAttempts {
			s.LogError(ctx, err, "Failed to append journal entry", slog.Int64("sequence", seq))
			return domain.JournalEntry{}, fmt.Errorf("failed to append journal entry: %w", err)
		}

		// another writer took the sequence; resynchronise and try the next one
		last, syncErr := s.journalRepo.LastSequence(ctx)
		if syncErr != nil {
			s.LogError(ctx, syncErr, "Failed to resynchronise journal sequence")
			return domain.JournalEntry{}, fmt.Errorf("failed to resynchronise journal sequence: %w", syncErr)
		}
		s.LogWarn(ctx, err, "Journal sequence taken by another writer",
			slog.Int64("sequence", seq), slog.Int64("store_sequence", last))
		if last > s.lastSeq {
			s.lastSeq = last
		}
	}
}

func (s *ledgerService) checkAccounts(lines []domain.JournalLine) error {
	if s.accounts == nil {
		return nil
	}
	for _, l := range lines {
		if _, ok := s.accounts.Lookup(l.AccountCode); !ok {
			return &domain.UnknownAccountError{AccountCode: l.AccountCode}
		}
	}
	return nil
}

func (s *ledgerService) fillAccountNames(lines []domain.JournalLine) {
	if s.accounts == nil {
		return
	}
	for i := range lines {
		if lines[i].AccountName != "" {
			continue
		}
		if acc, ok := s.accounts.Lookup(lines[i].AccountCode); ok {
			lines[i].AccountName = acc.Name
		}
	}
}

// GetJournal implements portssvc.JournalReaderSvc
func (s *ledgerService) GetJournal(ctx context.Context, journalNumber string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalByNumber(ctx, journalNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &domain.JournalNotFoundError{JournalNumber: journalNumber}
		}
		s.LogError(ctx, err, "Failed to load journal entry", slog.String("journal_number", journalNumber))
		return nil, fmt.Errorf("failed to load journal %s: %w", journalNumber, err)
	}
	result := entry.Clone()
	return &result, nil
}

// ListJournals implements portssvc.JournalReaderSvc
func (s *ledgerService) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	if limit > maxJournalPageSize {
		limit = maxJournalPageSize
	}

	var after int64
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = seq
	}

	// one extra row tells us whether another page exists
	entries, err := s.journalRepo.ListJournalsAfter(ctx, after, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.Int64("after_sequence", after))
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeSequenceToken(last.Sequence, last.JournalNumber)
		next = &token
	}
	return entries, next, nil
}

// JournalCount implements portssvc.JournalReaderSvc
func (s *ledgerService) JournalCount(ctx context.Context) (int64, error) {
	return s.journalRepo.LastSequence(ctx)
}

// JournalNumbers implements portssvc.JournalReaderSvc
func (s *ledgerService) JournalNumbers(ctx context.Context) ([]string, error) {
	last, err := s.journalRepo.LastSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal sequence: %w", err)
	}
	entries, err := s.journalRepo.FindJournals(ctx, portsrepo.JournalFilter{MaxSequence: last})
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	numbers := make([]string, len(entries))
	for i, e := range entries {
		numbers[i] = e.JournalNumber
	}
	return numbers, nil
}

// LockPeriod implements portssvc.PeriodLockSvc
func (s *ledgerService) LockPeriod(ctx context.Context, year int, month time.Month) error {
	return s.LockPeriodBy(ctx, year, month, "")
}

// LockPeriodBy implements portssvc.PeriodLockSvc. Locking an already locked
// period changes nothing but still appends to the audit log.
func (s *ledgerService) LockPeriodBy(ctx context.Context, year int, month time.Month, actor string) error {
	period, err := domain.NewPeriodKey(year, month)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	audit := domain.PeriodAuditEntry{
		Period:    period,
		Event:     domain.PeriodLocked,
		Actor:     strings.TrimSpace(actor),
		Timestamp: s.now(),
	}
	if err := s.periodRepo.SavePeriodLock(ctx, audit, true); err != nil {
		s.LogError(ctx, err, "Failed to lock period", slog.String("period", period.String()))
		return fmt.Errorf("failed to lock period %s: %w", period, err)
	}
	s.LogInfo(ctx, "Period locked", slog.String("period", period.String()), slog.String("actor", audit.Actor))
	return nil
}

// UnlockPeriod implements portssvc.PeriodLockSvc
func (s *ledgerService) UnlockPeriod(ctx context.Context, year int, month time.Month, actor, reason string) error {
	period, err := domain.NewPeriodKey(year, month)
	if err != nil {
		return err
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return fmt.Errorf("%w: unlocking a period requires an actor", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	audit := domain.PeriodAuditEntry{
		Period:    period,
		Event:     domain.PeriodUnlocked,
		Actor:     actor,
		Reason:    reason,
		Timestamp: s.now(),
	}
	if err := s.periodRepo.SavePeriodLock(ctx, audit, false); err != nil {
		s.LogError(ctx, err, "Failed to unlock period", slog.String("period", period.String()))
		return fmt.Errorf("failed to unlock period %s: %w", period, err)
	}
	s.LogInfo(ctx, "Period unlocked",
		slog.String("period", period.String()),
		slog.String("actor", actor),
		slog.String("reason", reason))
	return nil
}

// IsPeriodLocked implements portssvc.PeriodLockSvc
func (s *ledgerService) IsPeriodLocked(ctx context.Context, year int, month time.Month) (bool, error) {
	period, err := domain.NewPeriodKey(year, month)
	if err != nil {
		return false, err
	}
	locked, err := s.periodRepo.IsPeriodLocked(ctx, period)
	if err != nil {
		return false, fmt.Errorf("failed to read lock for period %s: %w", period, err)
	}
	return locked, nil
}

func (s *ledgerService) periodAudit(ctx context.Context, period domain.PeriodKey) ([]domain.PeriodAuditEntry, error) {
	audit, err := s.periodRepo.ListPeriodAudit(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log for period %s: %w", period, err)
	}
	return audit, nil
}

// PeriodAuditLog implements portssvc.PeriodLockSvc
func (s *ledgerService) PeriodAuditLog(ctx context.Context, year int, month time.Month) ([]string, error) {
	period, err := domain.NewPeriodKey(year, month)
	if err != nil {
		return nil, err
	}
	audit, err := s.periodAudit(ctx, period)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(audit))
	for i, a := range audit {
		lines[i] = a.String()
	}
	return lines, nil
}

// PeriodStatus implements portssvc.PeriodLockSvc
func (s *ledgerService) PeriodStatus(ctx context.Context, year int, month time.Month) (*domain.PeriodStatus, error) {
	period, err := domain.NewPeriodKey(year, month)
	if err != nil {
		return nil, err
	}
	audit, err := s.periodAudit(ctx, period)
	if err != nil {
		return nil, err
	}
	locked, err := s.IsPeriodLocked(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return &domain.PeriodStatus{
		Period:   period,
		Locked:   locked,
		AuditLog: audit,
	}, nil
}

// SetOpeningBalance implements portssvc.OpeningBalanceSvc
func (s *ledgerService) SetOpeningBalance(ctx context.Context, accountCode string, amount decimal.Decimal, asOf time.Time) error {
	ob := domain.OpeningBalance{
		AccountCode: strings.TrimSpace(accountCode),
		Amount:      amount,
		AsOfDate:    domain.DateOf(asOf),
		AuditFields: domain.NewAuditFields(s.now(), systemActor),
	}
	if err := ob.Validate(); err != nil {
		return err
	}
	if s.accounts != nil {
		if _, ok := s.accounts.Lookup(ob.AccountCode); !ok {
			return &domain.UnknownAccountError{AccountCode: ob.AccountCode}
		}
	}
	if err := s.openingRepo.UpsertOpeningBalance(ctx, ob); err != nil {
		s.LogError(ctx, err, "Failed to store opening balance", slog.String("account_code", ob.AccountCode))
		return fmt.Errorf("failed to store opening balance: %w", err)
	}
	s.LogInfo(ctx, "Opening balance set",
		slog.String("account_code", ob.AccountCode),
		slog.String("amount", amount.String()),
		slog.String("as_of", ob.AsOfDate.Format(time.DateOnly)))
	return nil
}

// ListOpeningBalances implements portssvc.OpeningBalanceSvc
func (s *ledgerService) ListOpeningBalances(ctx context.Context) ([]domain.OpeningBalance, error) {
	return s.openingRepo.ListOpeningBalances(ctx)
}
