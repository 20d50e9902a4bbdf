package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodLockRepositoryFacade = (*PgxPeriodRepository)(nil)

// IsPeriodLocked implements portsrepo.PeriodLockReader
func (r *PgxPeriodRepository) IsPeriodLocked(ctx context.Context, period domain.PeriodKey) (bool, error) {
	var locked bool
	err := r.Pool.QueryRow(ctx, `
		SELECT locked FROM period_locks WHERE year = $1 AND month = $2;`,
		period.Year, int(period.Month)).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to read lock for period "+period.String(), err)
	}
	return locked, nil
}

// lockPeriodRow makes sure the period row exists and reads it under the given row lock.
func lockPeriodRow(ctx context.Context, tx pgx.Tx, period domain.PeriodKey, lockClause string) (bool, error) {
	_, err := tx.Exec(ctx, `
		INSERT INTO period_locks (year, month, locked, updated_at)
		VALUES ($1, $2, FALSE, NOW())
		ON CONFLICT (year, month) DO NOTHING;`,
		period.Year, int(period.Month))
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to prepare lock row for period "+period.String(), err)
	}

	var locked bool
	err = tx.QueryRow(ctx, `
		SELECT locked FROM period_locks WHERE year = $1 AND month = $2 `+lockClause+`;`,
		period.Year, int(period.Month)).Scan(&locked)
	if err != nil {
		return false, apperrors.NewAppError(http.StatusInternalServerError, "failed to read lock for period "+period.String(), err)
	}
	return locked, nil
}

// ListPeriodAudit implements portsrepo.PeriodLockReader
func (r *PgxPeriodRepository) ListPeriodAudit(ctx context.Context, period domain.PeriodKey) ([]domain.PeriodAuditEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id, year, month, event, actor, reason, occurred_at
		FROM period_audit
		WHERE year = $1 AND month = $2
		ORDER BY id;`, period.Year, int(period.Month))
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query audit for period "+period.String(), err)
	}
	defer rows.Close()

	var audit []domain.PeriodAuditEntry
	for rows.Next() {
		var m models.PeriodAudit
		if err := rows.Scan(&m.ID, &m.Year, &m.Month, &m.Event, &m.Actor, &m.Reason, &m.OccurredAt); err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan period audit row", err)
		}
		audit = append(audit, mapping.ToDomainPeriodAudit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating period audit rows", err)
	}
	return audit, nil
}

// SavePeriodLock takes the period row FOR UPDATE, then sets it and appends the
// audit row in one transaction.
func (r *PgxPeriodRepository) SavePeriodLock(ctx context.Context, audit domain.PeriodAuditEntry, locked bool) error {
	m := mapping.ToModelPeriodAudit(audit)

	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockPeriodRow(ctx, tx, audit.Period, "FOR UPDATE"); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			UPDATE period_locks SET locked = $3, updated_at = $4
			WHERE year = $1 AND month = $2;`,
			m.Year, m.Month, locked, m.OccurredAt)
		if err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to save lock for period "+audit.Period.String(), err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO period_audit (year, month, event, actor, reason, occurred_at)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			m.Year, m.Month, m.Event, m.Actor, m.Reason, m.OccurredAt)
		if err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to append audit for period "+audit.Period.String(), err)
		}
		return nil
	})
}
