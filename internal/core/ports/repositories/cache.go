package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceCache stores folded trial balance figures. Keys embed the journal
// snapshot size so an entry never outlives the snapshot it was computed from.
type BalanceCache interface {
	// GetBalances reports found=false on a miss; err is reserved for transport failures.
	GetBalances(ctx context.Context, key string) (balances map[string]decimal.Decimal, found bool, err error)
	SetBalances(ctx context.Context, key string, balances map[string]decimal.Decimal, ttl time.Duration) error
}
