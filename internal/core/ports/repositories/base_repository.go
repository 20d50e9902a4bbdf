package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by SQL stores whose writes span several statements.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error

	// InTx runs fn in one transaction, committing when fn returns nil and rolling back otherwise.
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
