package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func entry(seq int64, date time.Time) domain.JournalEntry {
	return domain.JournalEntry{
		JournalNumber: domain.FormatJournalNumber(seq),
		Sequence:      seq,
		Date:          date,
		Description:   "Sale",
		Status:        domain.Posted,
		Lines: []domain.JournalLine{
			{AccountCode: "1000", AccountName: "Cash", Amount: decimal.RequireFromString("12.50"), Side: domain.Debit},
			{AccountCode: "4000", AccountName: "Revenue", Amount: decimal.RequireFromString("12.50"), Side: domain.Credit},
		},
	}
}

func TestJournalRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)
	repos := NewRepositoryProvider(s)

	d := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.JournalRepo.AppendJournal(ctx, entry(1, d)))
	require.NoError(t, repos.JournalRepo.AppendJournal(ctx, entry(2, d)))
	assert.ErrorIs(t, repos.JournalRepo.AppendJournal(ctx, entry(2, d)), apperrors.ErrDuplicate)
	require.NoError(t, s.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	repos = NewRepositoryProvider(s)

	last, err := repos.JournalRepo.LastSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), last)

	got, err := repos.JournalRepo.FindJournalByNumber(ctx, "JE-0001")
	require.NoError(t, err)
	assert.Equal(t, d, got.Date)
	assert.True(t, got.Lines[0].Amount.Equal(decimal.RequireFromString("12.5")))

	_, err = repos.JournalRepo.FindJournalByNumber(ctx, "JE-0003")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	prefix, err := repos.JournalRepo.FindJournals(ctx, portsrepo.JournalFilter{MaxSequence: 1})
	require.NoError(t, err)
	assert.Len(t, prefix, 1)

	after, err := repos.JournalRepo.ListJournalsAfter(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "JE-0002", after[0].JournalNumber)
}

func TestPeriodRepository_LocksAndAudit(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	defer s.Close()
	repos := NewRepositoryProvider(s)

	dec := domain.PeriodKey{Year: 2024, Month: time.December}
	at := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repos.PeriodRepo.SavePeriodLock(ctx, domain.PeriodAuditEntry{Period: dec, Event: domain.PeriodLocked, Timestamp: at}, true))

	locked, err := repos.PeriodRepo.IsPeriodLocked(ctx, dec)
	require.NoError(t, err)
	assert.True(t, locked)

	var lockedErr *domain.PeriodLockedError
	err = repos.JournalRepo.AppendJournal(ctx, entry(1, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, dec, lockedErr.Period)

	require.NoError(t, repos.PeriodRepo.SavePeriodLock(ctx, domain.PeriodAuditEntry{Period: dec, Event: domain.PeriodUnlocked, Actor: "cfo", Reason: "late invoice", Timestamp: at}, false))
	locked, err = repos.PeriodRepo.IsPeriodLocked(ctx, dec)
	require.NoError(t, err)
	assert.False(t, locked)
	require.NoError(t, repos.JournalRepo.AppendJournal(ctx, entry(1, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))))

	audit, err := repos.PeriodRepo.ListPeriodAudit(ctx, dec)
	require.NoError(t, err)
	require.Len(t, audit, 2)
	assert.Equal(t, "UNLOCKED by cfo: late invoice", audit[1].String())
}

func TestRecurringRepository_TemplatesAndOccurrences(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	defer s.Close()
	repos := NewRepositoryProvider(s)

	tmpl := domain.RecurringEntryTemplate{
		Description: "Rent",
		Frequency:   domain.Monthly,
		StartDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Lines:       entry(1, time.Time{}).Lines,
	}
	created, err := repos.RecurringRepo.CreateTemplate(ctx, tmpl)
	require.NoError(t, err)
	assert.Equal(t, "REC-1", created.ID)

	got, err := repos.RecurringRepo.FindTemplateByID(ctx, "REC-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Monthly, got.Frequency)
	assert.Len(t, got.Lines, 2)

	done, err := repos.RecurringRepo.IsOccurrenceProcessed(ctx, "REC-1", tmpl.StartDate)
	require.NoError(t, err)
	assert.False(t, done)

	first := entry(1, tmpl.StartDate)
	first.Occurrence = &domain.ProcessedOccurrence{TemplateID: "REC-1", Date: tmpl.StartDate}
	require.NoError(t, repos.JournalRepo.AppendJournal(ctx, first))

	done, err = repos.RecurringRepo.IsOccurrenceProcessed(ctx, "REC-1", tmpl.StartDate)
	require.NoError(t, err)
	assert.True(t, done)

	// the same occurrence under a fresh sequence is refused and leaves nothing behind
	second := entry(2, tmpl.StartDate)
	second.Occurrence = &domain.ProcessedOccurrence{TemplateID: "REC-1", Date: tmpl.StartDate}
	assert.ErrorIs(t, repos.JournalRepo.AppendJournal(ctx, second), domain.ErrOccurrenceProcessed)

	last, err := repos.JournalRepo.LastSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), last)
}

func TestOpeningBalanceRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	defer s.Close()
	repos := NewRepositoryProvider(s)

	require.NoError(t, repos.OpeningBalanceRepo.UpsertOpeningBalance(ctx, domain.OpeningBalance{AccountCode: "1000", Amount: decimal.NewFromInt(1)}))
	require.NoError(t, repos.OpeningBalanceRepo.UpsertOpeningBalance(ctx, domain.OpeningBalance{AccountCode: "1000", Amount: decimal.NewFromInt(5000)}))

	list, err := repos.OpeningBalanceRepo.ListOpeningBalances(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(decimal.NewFromInt(5000)))
}
