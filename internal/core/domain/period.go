package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
)

// PeriodKey identifies an accounting month.
type PeriodKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewPeriodKey validates year and month.
func NewPeriodKey(year int, month time.Month) (PeriodKey, error) {
	p := PeriodKey{Year: year, Month: month}
	return p, p.Validate()
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) PeriodKey {
	return PeriodKey{Year: t.Year(), Month: t.Month()}
}

// ParsePeriodKey parses the "2024-11" form produced by String.
func ParsePeriodKey(s string) (PeriodKey, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return PeriodKey{}, fmt.Errorf("%w: invalid period %q", apperrors.ErrValidation, s)
	}
	return PeriodOf(t), nil
}

func (p PeriodKey) Validate() error {
	if p.Year < 1 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", apperrors.ErrValidation, p.Year)
	}
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", apperrors.ErrValidation, int(p.Month))
	}
	return nil
}

func (p PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start returns the first day of the period.
func (p PeriodKey) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period.
func (p PeriodKey) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// PeriodEvent is the kind of audit record written for a lock toggle.
type PeriodEvent string

const (
	PeriodLocked   PeriodEvent = "LOCKED"
	PeriodUnlocked PeriodEvent = "UNLOCKED"
)

// PeriodAuditEntry is one append-only record in a period's audit log.
type PeriodAuditEntry struct {
	Period    PeriodKey   `json:"period"`
	Event     PeriodEvent `json:"event"`
	Actor     string      `json:"actor,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// String renders "LOCKED at <ts>" or "UNLOCKED by <actor>: <reason>".
func (a PeriodAuditEntry) String() string {
	if a.Event == PeriodUnlocked {
		return fmt.Sprintf("%s by %s: %s", a.Event, a.Actor, a.Reason)
	}
	line := fmt.Sprintf("%s at %s", a.Event, a.Timestamp.UTC().Format(time.RFC3339))
	if a.Actor != "" {
		line += " by " + a.Actor
	}
	return line
}

// PeriodStatus is the lock state of a period together with its audit trail.
type PeriodStatus struct {
	Period   PeriodKey          `json:"period"`
	Locked   bool               `json:"locked"`
	AuditLog []PeriodAuditEntry `json:"auditLog"`
}
