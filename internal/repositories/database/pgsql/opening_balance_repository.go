package pgsql

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

type PgxOpeningBalanceRepository struct {
	BaseRepository
}

func newPgxOpeningBalanceRepository(pool *pgxpool.Pool) *PgxOpeningBalanceRepository {
	return &PgxOpeningBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OpeningBalanceRepositoryFacade = (*PgxOpeningBalanceRepository)(nil)

// UpsertOpeningBalance keeps the original created_* columns on replace.
func (r *PgxOpeningBalanceRepository) UpsertOpeningBalance(ctx context.Context, balance domain.OpeningBalance) error {
	m := mapping.ToModelOpeningBalance(balance)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO opening_balances (
			account_code, amount, as_of_date, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account_code) DO UPDATE SET
			amount = EXCLUDED.amount,
			as_of_date = EXCLUDED.as_of_date,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`,
		m.AccountCode,
		m.Amount,
		m.AsOfDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to upsert opening balance for "+m.AccountCode, err)
	}
	return nil
}

// ListOpeningBalances implements portsrepo.OpeningBalanceRepositoryFacade
func (r *PgxOpeningBalanceRepository) ListOpeningBalances(ctx context.Context) ([]domain.OpeningBalance, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT account_code, amount, as_of_date, created_at, created_by, last_updated_at, last_updated_by
		FROM opening_balances
		ORDER BY account_code;`)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query opening balances", err)
	}
	defer rows.Close()

	var out []domain.OpeningBalance
	for rows.Next() {
		var m models.OpeningBalance
		err := rows.Scan(&m.AccountCode, &m.Amount, &m.AsOfDate, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan opening balance row", err)
		}
		out = append(out, mapping.ToDomainOpeningBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating opening balance rows", err)
	}
	return out, nil
}
