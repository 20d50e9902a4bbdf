package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/models"
	"github.com/SscSPs/general_ledger/internal/utils/mapping"
)

type openingBalanceRepository struct {
	db *bolt.DB
}

var _ portsrepo.OpeningBalanceRepositoryFacade = (*openingBalanceRepository)(nil)

// UpsertOpeningBalance implements portsrepo.OpeningBalanceRepositoryFacade
func (r *openingBalanceRepository) UpsertOpeningBalance(_ context.Context, balance domain.OpeningBalance) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketOpeningBalance))
		m := mapping.ToModelOpeningBalance(balance)
		if existing := b.Get([]byte(m.AccountCode)); existing != nil {
			var prev models.OpeningBalance
			if err := json.Unmarshal(existing, &prev); err == nil {
				m.CreatedAt = prev.CreatedAt
				m.CreatedBy = prev.CreatedBy
			}
		}
		return putJSON(b, []byte(m.AccountCode), m)
	})
}

// ListOpeningBalances returns balances in key order, which is account code order.
func (r *openingBalanceRepository) ListOpeningBalances(_ context.Context) ([]domain.OpeningBalance, error) {
	var out []domain.OpeningBalance
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketOpeningBalance)).ForEach(func(_, v []byte) error {
			var m models.OpeningBalance
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal opening balance: %w", err)
			}
			out = append(out, mapping.ToDomainOpeningBalance(m))
			return nil
		})
	})
	return out, err
}
