package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
)

func TestPeriodKey(t *testing.T) {
	p, err := domain.NewPeriodKey(2024, time.November)
	require.NoError(t, err)
	assert.Equal(t, "2024-11", p.String())
	assert.Equal(t, day(2024, 11, 1), p.Start())
	assert.Equal(t, day(2024, 11, 30), p.End())
	assert.Equal(t, p, domain.PeriodOf(nov15))

	parsed, err := domain.ParsePeriodKey("2024-11")
	require.NoError(t, err)
	assert.Equal(t, p, parsed)

	_, err = domain.NewPeriodKey(2024, 13)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = domain.ParsePeriodKey("Nov 2024")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPeriodAuditEntry_String(t *testing.T) {
	ts := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	p := domain.PeriodKey{Year: 2024, Month: time.November}

	locked := domain.PeriodAuditEntry{Period: p, Event: domain.PeriodLocked, Timestamp: ts}
	assert.Equal(t, "LOCKED at 2024-12-01T09:00:00Z", locked.String())

	unlocked := domain.PeriodAuditEntry{Period: p, Event: domain.PeriodUnlocked, Actor: "admin", Reason: "late invoice", Timestamp: ts}
	assert.Equal(t, "UNLOCKED by admin: late invoice", unlocked.String())
}
