package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

func posted(seq int64, date time.Time) domain.JournalEntry {
	return domain.JournalEntry{
		JournalNumber: domain.FormatJournalNumber(seq),
		Sequence:      seq,
		Date:          date,
		Description:   "test",
		Status:        domain.Posted,
		Lines: []domain.JournalLine{
			{AccountCode: "1000", Amount: decimal.NewFromInt(5), Side: domain.Debit},
			{AccountCode: "4000", Amount: decimal.NewFromInt(5), Side: domain.Credit},
		},
	}
}

func TestJournalRepository_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	repo := newJournalRepository(nil, nil)
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AppendJournal(ctx, posted(1, jan)))
	require.NoError(t, repo.AppendJournal(ctx, posted(2, feb)))

	err := repo.AppendJournal(ctx, posted(2, feb))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	last, err := repo.LastSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), last)

	got, err := repo.FindJournalByNumber(ctx, "JE-0002")
	require.NoError(t, err)
	assert.Equal(t, feb, got.Date)

	_, err = repo.FindJournalByNumber(ctx, "JE-0009")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// snapshot bound hides later entries
	prefix, err := repo.FindJournals(ctx, portsrepo.JournalFilter{MaxSequence: 1})
	require.NoError(t, err)
	assert.Len(t, prefix, 1)

	janOnly, err := repo.FindJournals(ctx, portsrepo.JournalFilter{MaxSequence: 2, To: jan})
	require.NoError(t, err)
	require.Len(t, janOnly, 1)
	assert.Equal(t, "JE-0001", janOnly[0].JournalNumber)

	after, err := repo.ListJournalsAfter(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, int64(2), after[0].Sequence)
}

func TestJournalRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newJournalRepository(nil, nil)
	require.NoError(t, repo.AppendJournal(ctx, posted(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	got, err := repo.FindJournalByNumber(ctx, "JE-0001")
	require.NoError(t, err)
	got.Lines[0].Amount = decimal.NewFromInt(999)

	again, err := repo.FindJournalByNumber(ctx, "JE-0001")
	require.NoError(t, err)
	assert.True(t, again.Lines[0].Amount.Equal(decimal.NewFromInt(5)))
}

func TestPeriodRepository_SaveAndAudit(t *testing.T) {
	ctx := context.Background()
	repo := newPeriodRepository()
	nov := domain.PeriodKey{Year: 2024, Month: time.November}

	require.NoError(t, repo.SavePeriodLock(ctx, domain.PeriodAuditEntry{Period: nov, Event: domain.PeriodLocked}, true))
	locked, err := repo.IsPeriodLocked(ctx, nov)
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, repo.SavePeriodLock(ctx, domain.PeriodAuditEntry{Period: nov, Event: domain.PeriodUnlocked, Actor: "cfo"}, false))
	locked, err = repo.IsPeriodLocked(ctx, nov)
	require.NoError(t, err)
	assert.False(t, locked)

	audit, err := repo.ListPeriodAudit(ctx, nov)
	require.NoError(t, err)
	require.Len(t, audit, 2)
	assert.Equal(t, domain.PeriodUnlocked, audit[1].Event)
}

func TestOpeningBalanceRepository_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newOpeningBalanceRepository()

	require.NoError(t, repo.UpsertOpeningBalance(ctx, domain.OpeningBalance{AccountCode: "2000", Amount: decimal.NewFromInt(-10)}))
	require.NoError(t, repo.UpsertOpeningBalance(ctx, domain.OpeningBalance{AccountCode: "1000", Amount: decimal.NewFromInt(100)}))
	require.NoError(t, repo.UpsertOpeningBalance(ctx, domain.OpeningBalance{AccountCode: "1000", Amount: decimal.NewFromInt(5000)}))

	list, err := repo.ListOpeningBalances(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1000", list[0].AccountCode)
	assert.True(t, list[0].Amount.Equal(decimal.NewFromInt(5000)))
}

func TestRecurringRepository_TemplatesAndOccurrences(t *testing.T) {
	ctx := context.Background()
	repo := newRecurringRepository()

	first, err := repo.CreateTemplate(ctx, domain.RecurringEntryTemplate{Description: "Rent"})
	require.NoError(t, err)
	second, err := repo.CreateTemplate(ctx, domain.RecurringEntryTemplate{Description: "Insurance"})
	require.NoError(t, err)
	assert.Equal(t, "REC-1", first.ID)
	assert.Equal(t, "REC-2", second.ID)

	list, err := repo.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rent", list[0].Description)

	_, err = repo.FindTemplateByID(ctx, "REC-7")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	done, err := repo.IsOccurrenceProcessed(ctx, "REC-1", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, done)
}

func TestJournalRepository_AppendRecordsOccurrence(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider()
	date := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	first := posted(1, date)
	first.Occurrence = &domain.ProcessedOccurrence{TemplateID: "REC-1", Date: date}
	require.NoError(t, repos.JournalRepo.AppendJournal(ctx, first))

	done, err := repos.RecurringRepo.IsOccurrenceProcessed(ctx, "REC-1", date)
	require.NoError(t, err)
	assert.True(t, done)

	again := posted(2, date)
	again.Occurrence = &domain.ProcessedOccurrence{TemplateID: "REC-1", Date: date}
	err = repos.JournalRepo.AppendJournal(ctx, again)
	assert.ErrorIs(t, err, domain.ErrOccurrenceProcessed)

	last, err := repos.JournalRepo.LastSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), last)
}

func TestJournalRepository_AppendRejectsLockedPeriod(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositoryProvider()
	nov := domain.PeriodKey{Year: 2024, Month: time.November}
	require.NoError(t, repos.PeriodRepo.SavePeriodLock(ctx, domain.PeriodAuditEntry{Period: nov, Event: domain.PeriodLocked}, true))

	entry := posted(1, time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC))
	entry.Occurrence = &domain.ProcessedOccurrence{TemplateID: "REC-1", Date: entry.Date}
	err := repos.JournalRepo.AppendJournal(ctx, entry)

	var lockedErr *domain.PeriodLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, nov, lockedErr.Period)

	last, err := repos.JournalRepo.LastSequence(ctx)
	require.NoError(t, err)
	assert.Zero(t, last)
	done, err := repos.RecurringRepo.IsOccurrenceProcessed(ctx, "REC-1", entry.Date)
	require.NoError(t, err)
	assert.False(t, done)
}
