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

// periodRepository keeps lock rows keyed by "YYYY-MM" and one nested audit
// bucket per period keyed by NextSequence.
type periodRepository struct {
	db *bolt.DB
}

var _ portsrepo.PeriodLockRepositoryFacade = (*periodRepository)(nil)

// IsPeriodLocked implements portsrepo.PeriodLockReader
func (r *periodRepository) IsPeriodLocked(_ context.Context, period domain.PeriodKey) (bool, error) {
	var locked bool
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		locked, err = periodLocked(tx, period)
		return err
	})
	return locked, err
}

func periodLocked(tx *bolt.Tx, period domain.PeriodKey) (bool, error) {
	v := tx.Bucket([]byte(bucketPeriodLocks)).Get([]byte(period.String()))
	if v == nil {
		return false, nil
	}
	var lock models.PeriodLock
	if err := json.Unmarshal(v, &lock); err != nil {
		return false, fmt.Errorf("failed to unmarshal period lock %s: %w", period, err)
	}
	return lock.Locked, nil
}

// ListPeriodAudit implements portsrepo.PeriodLockReader
func (r *periodRepository) ListPeriodAudit(_ context.Context, period domain.PeriodKey) ([]domain.PeriodAuditEntry, error) {
	var audit []domain.PeriodAuditEntry
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPeriodAudit)).Bucket([]byte(period.String()))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var m models.PeriodAudit
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to unmarshal period audit: %w", err)
			}
			audit = append(audit, mapping.ToDomainPeriodAudit(m))
			return nil
		})
	})
	return audit, err
}

// SavePeriodLock implements portsrepo.PeriodLockWriter
func (r *periodRepository) SavePeriodLock(_ context.Context, audit domain.PeriodAuditEntry, locked bool) error {
	key := []byte(audit.Period.String())
	return r.db.Update(func(tx *bolt.Tx) error {
		lock := models.PeriodLock{
			Year:      audit.Period.Year,
			Month:     int(audit.Period.Month),
			Locked:    locked,
			UpdatedAt: audit.Timestamp,
		}
		if err := putJSON(tx.Bucket([]byte(bucketPeriodLocks)), key, lock); err != nil {
			return err
		}

		b, err := tx.Bucket([]byte(bucketPeriodAudit)).CreateBucketIfNotExists(key)
		if err != nil {
			return fmt.Errorf("failed to create audit bucket %s: %w", key, err)
		}
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		m := mapping.ToModelPeriodAudit(audit)
		m.ID = int64(id)
		return putJSON(b, itob(m.ID), m)
	})
}
