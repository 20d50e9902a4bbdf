package pgsql

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

const journalColumns = `
	j.sequence, j.journal_number, j.journal_date, j.description, j.is_adjusting, j.status,
	j.reverses_journal, j.created_at, j.created_by, j.last_updated_at, j.last_updated_by,
	l.line_no, l.account_code, l.account_name, l.amount, l.side`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the posted journal.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// AppendJournal inserts the header and its lines in one transaction. The period
// row is read FOR SHARE so a concurrent SavePeriodLock on the same period waits
// for this append, or this append waits for it and sees the new state.
func (r *PgxJournalRepository) AppendJournal(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournal(entry)
	period := entry.Period()

	return r.InTx(ctx, func(tx pgx.Tx) error {
		locked, err := lockPeriodRow(ctx, tx, period, "FOR SHARE")
		if err != nil {
			return err
		}
		if locked {
			return &domain.PeriodLockedError{Period: period}
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO journals (
				sequence, journal_number, journal_date, description, is_adjusting, status,
				reverses_journal, created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			m.Sequence,
			m.JournalNumber,
			m.JournalDate,
			m.Description,
			m.IsAdjusting,
			m.Status,
			m.ReversesJournal,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewAppError(http.StatusConflict, "journal sequence "+strconv.FormatInt(m.Sequence, 10)+" already taken", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert journal "+m.JournalNumber, err)
		}

		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO journal_lines (journal_sequence, line_no, account_code, account_name, amount, side)
			VALUES ($1, $2, $3, $4, $5, $6);`
		for _, l := range m.Lines {
			batch.Queue(lineQuery, l.JournalSequence, l.LineNo, l.AccountCode, l.AccountName, l.Amount, l.Side)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert lines for journal "+m.JournalNumber, err)
		}

		if entry.Occurrence == nil {
			return nil
		}
		occ := *entry.Occurrence
		occ.JournalNumber = m.JournalNumber
		return insertOccurrence(ctx, tx, occ, m.CreatedAt)
	})
}

// FindJournalByNumber implements portsrepo.JournalReader
func (r *PgxJournalRepository) FindJournalByNumber(ctx context.Context, journalNumber string) (*domain.JournalEntry, error) {
	journals, err := r.queryJournals(ctx, "WHERE j.journal_number = $1", journalNumber)
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, apperrors.NewAppError(http.StatusNotFound, "journal "+journalNumber+" not found", nil)
	}
	entry := mapping.ToDomainJournal(journals[0])
	return &entry, nil
}

// FindJournals implements portsrepo.JournalReader
func (r *PgxJournalRepository) FindJournals(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	conds := []string{"j.sequence <= $1"}
	args := []any{filter.MaxSequence}
	if !filter.From.IsZero() {
		args = append(args, domain.DateOf(filter.From))
		conds = append(conds, "j.journal_date >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, domain.DateOf(filter.To))
		conds = append(conds, "j.journal_date <= $"+strconv.Itoa(len(args)))
	}

	journals, err := r.queryJournals(ctx, "WHERE "+strings.Join(conds, " AND "), args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournals(journals), nil
}

// ListJournalsAfter implements portsrepo.JournalReader
func (r *PgxJournalRepository) ListJournalsAfter(ctx context.Context, afterSequence int64, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	// limit applies to headers, not joined rows
	where := `WHERE j.sequence IN (
		SELECT sequence FROM journals WHERE sequence > $1 ORDER BY sequence LIMIT $2
	)`
	journals, err := r.queryJournals(ctx, where, afterSequence, limit)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJournals(journals), nil
}

// LastSequence implements portsrepo.JournalReader
func (r *PgxJournalRepository) LastSequence(ctx context.Context) (int64, error) {
	var last int64
	if err := r.Pool.QueryRow(ctx, `SELECT COALESCE(MAX(sequence), 0) FROM journals;`).Scan(&last); err != nil {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to read last journal sequence", err)
	}
	return last, nil
}

// queryJournals loads headers joined with their lines and folds the rows back into journals.
func (r *PgxJournalRepository) queryJournals(ctx context.Context, where string, args ...any) ([]models.Journal, error) {
	query := "SELECT " + journalColumns + `
		FROM journals j
		JOIN journal_lines l ON l.journal_sequence = j.sequence
		` + where + `
		ORDER BY j.sequence, l.line_no;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query journals", err)
	}
	defer rows.Close()

	var journals []models.Journal
	for rows.Next() {
		var j models.Journal
		var l models.JournalLine
		var reverses sql.NullString
		err := rows.Scan(
			&j.Sequence,
			&j.JournalNumber,
			&j.JournalDate,
			&j.Description,
			&j.IsAdjusting,
			&j.Status,
			&reverses,
			&j.CreatedAt,
			&j.CreatedBy,
			&j.LastUpdatedAt,
			&j.LastUpdatedBy,
			&l.LineNo,
			&l.AccountCode,
			&l.AccountName,
			&l.Amount,
			&l.Side,
		)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan journal row", err)
		}
		l.JournalSequence = j.Sequence

		if n := len(journals); n > 0 && journals[n-1].Sequence == j.Sequence {
			journals[n-1].Lines = append(journals[n-1].Lines, l)
			continue
		}
		if reverses.Valid {
			j.ReversesJournal = &reverses.String
		}
		j.Lines = []models.JournalLine{l}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating journal rows", err)
	}
	return journals, nil
}
