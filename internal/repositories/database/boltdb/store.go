package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

// Bucket names.
const (
	bucketJournals       = "journals"
	bucketJournalNumbers = "journal_numbers"
	bucketPeriodLocks    = "period_locks"
	bucketPeriodAudit    = "period_audit"
	bucketOpeningBalance = "opening_balances"
	bucketTemplates      = "recurring_templates"
	bucketOccurrences    = "processed_occurrences"
)

// Store wraps a single bbolt file holding every ledger bucket.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the database file and initializes buckets.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{
			bucketJournals, bucketJournalNumbers, bucketPeriodLocks, bucketPeriodAudit,
			bucketOpeningBalance, bucketTemplates, bucketOccurrences,
		}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo:        &journalRepository{db: s.db},
		PeriodRepo:         &periodRepository{db: s.db},
		OpeningBalanceRepo: &openingBalanceRepository{db: s.db},
		RecurringRepo:      &recurringRepository{db: s.db},
	}
}

func putJSON(b *bolt.Bucket, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return b.Put(key, data)
}

// itob converts an int64 to a byte slice for use as a bbolt key.
// Big-endian keeps cursor order equal to numeric order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
