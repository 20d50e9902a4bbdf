package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
)

// PeriodRepository holds the lock set and the audit trail of every period.
type PeriodRepository struct {
	mu     sync.RWMutex
	locked map[domain.PeriodKey]struct{}
	audit  map[domain.PeriodKey][]domain.PeriodAuditEntry
}

func newPeriodRepository() *PeriodRepository {
	return &PeriodRepository{
		locked: make(map[domain.PeriodKey]struct{}),
		audit:  make(map[domain.PeriodKey][]domain.PeriodAuditEntry),
	}
}

var _ portsrepo.PeriodLockRepositoryFacade = (*PeriodRepository)(nil)

// IsPeriodLocked implements portsrepo.PeriodLockReader
func (r *PeriodRepository) IsPeriodLocked(_ context.Context, period domain.PeriodKey) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.locked[period]
	return ok, nil
}

// ListPeriodAudit implements portsrepo.PeriodLockReader
func (r *PeriodRepository) ListPeriodAudit(_ context.Context, period domain.PeriodKey) ([]domain.PeriodAuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.audit[period]
	out := make([]domain.PeriodAuditEntry, len(src))
	copy(out, src)
	return out, nil
}

// SavePeriodLock implements portsrepo.PeriodLockWriter
func (r *PeriodRepository) SavePeriodLock(_ context.Context, audit domain.PeriodAuditEntry, locked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if locked {
		r.locked[audit.Period] = struct{}{}
	} else {
		delete(r.locked, audit.Period)
	}
	r.audit[audit.Period] = append(r.audit[audit.Period], audit)
	return nil
}
