package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

// OpeningBalanceRepository keeps one opening balance per account code.
type OpeningBalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]domain.OpeningBalance
}

func newOpeningBalanceRepository() *OpeningBalanceRepository {
	return &OpeningBalanceRepository{balances: make(map[string]domain.OpeningBalance)}
}

var _ portsrepo.OpeningBalanceRepositoryFacade = (*OpeningBalanceRepository)(nil)

// UpsertOpeningBalance implements portsrepo.OpeningBalanceRepositoryFacade
func (r *OpeningBalanceRepository) UpsertOpeningBalance(_ context.Context, balance domain.OpeningBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.balances[balance.AccountCode]; ok {
		balance.CreatedAt = existing.CreatedAt
		balance.CreatedBy = existing.CreatedBy
	}
	r.balances[balance.AccountCode] = balance
	return nil
}

// ListOpeningBalances implements portsrepo.OpeningBalanceRepositoryFacade
func (r *OpeningBalanceRepository) ListOpeningBalances(_ context.Context) ([]domain.OpeningBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.OpeningBalance, 0, len(r.balances))
	for _, b := range r.balances {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
	return out, nil
}
