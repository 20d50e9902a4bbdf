package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func useBoltStore(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "bolt")
	t.Setenv("BOLT_PATH", filepath.Join(t.TempDir(), "ledger.db"))
	t.Setenv("REDIS_URL", "")
	t.Setenv("CHART_OF_ACCOUNTS_FILE", "")
}

func TestPeriodCommands_PersistAcrossInvocations(t *testing.T) {
	useBoltStore(t)

	out, err := runCLI(t, "period", "lock", "2024", "11", "--actor", "controller")
	require.NoError(t, err)
	assert.Contains(t, out, "period 2024-11 locked")

	out, err = runCLI(t, "period", "status", "2024", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "period 2024-11 is locked")
	assert.Contains(t, out, "LOCKED at")
	assert.Contains(t, out, "by controller")

	out, err = runCLI(t, "period", "unlock", "2024", "11", "--actor", "admin", "--reason", "late invoice")
	require.NoError(t, err)
	assert.Contains(t, out, "unlocked")

	out, err = runCLI(t, "period", "status", "2024", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "period 2024-11 is open")
	assert.Contains(t, out, "UNLOCKED by admin: late invoice")
}

func TestPeriodCommands_RejectBadInput(t *testing.T) {
	useBoltStore(t)

	_, err := runCLI(t, "period", "lock", "2024", "13")
	assert.Error(t, err)

	_, err = runCLI(t, "period", "status", "twenty", "1")
	assert.Error(t, err)
}

func TestTrialBalance_EmptyLedger(t *testing.T) {
	useBoltStore(t)

	out, err := runCLI(t, "trial-balance", "--to", "2024-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "0.00")
	assert.NotContains(t, out, "WARNING")

	_, err = runCLI(t, "trial-balance", "--to", "31/12/2024")
	assert.Error(t, err)
}

func TestRecurringAndJournalCommands_EmptyLedger(t *testing.T) {
	useBoltStore(t)

	out, err := runCLI(t, "recurring", "process", "--from", "2024-01-01", "--to", "2024-03-31")
	require.NoError(t, err)
	assert.Contains(t, out, "0 entries posted")

	out, err = runCLI(t, "journal", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}
