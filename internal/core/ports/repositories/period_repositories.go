package repositories

import (
	"context"

	"github.com/SscSPs/general_ledger/internal/core/domain"
)

// PeriodLockReader defines read operations for period locks
type PeriodLockReader interface {
	// IsPeriodLocked reads the committed lock state of one period.
	IsPeriodLocked(ctx context.Context, period domain.PeriodKey) (bool, error)

	// ListPeriodAudit returns the audit trail of one period in append order.
	ListPeriodAudit(ctx context.Context, period domain.PeriodKey) ([]domain.PeriodAuditEntry, error)
}

// PeriodLockWriter defines write operations for period locks
type PeriodLockWriter interface {
	// SavePeriodLock sets the lock state of audit.Period and appends audit in one unit of work.
	// It must serialise with AppendJournal for the same period.
	SavePeriodLock(ctx context.Context, audit domain.PeriodAuditEntry, locked bool) error
}

// PeriodLockRepositoryFacade combines period lock reads and writes
type PeriodLockRepositoryFacade interface {
	PeriodLockReader
	PeriodLockWriter
}
