package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/general_ledger/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_MemoryWithoutExtras(t *testing.T) {
	res, err := Open(context.Background(), &config.Config{StorageDriver: config.StorageMemory}, discardLogger())
	require.NoError(t, err)
	defer res.Close()

	assert.NotNil(t, res.Repos.JournalRepo)
	assert.NotNil(t, res.Repos.RecurringRepo)
	assert.Nil(t, res.Repos.BalanceCache)
	assert.Nil(t, res.Chart)
}

func TestOpen_BoltWithRedisAndChart(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	chartFile := filepath.Join(dir, "chart.yaml")
	require.NoError(t, os.WriteFile(chartFile, []byte(`
accounts:
  - code: "1000"
    name: Cash
    category: asset
  - code: "4000"
    name: Sales
    category: revenue
`), 0o600))

	cfg := &config.Config{
		StorageDriver:       config.StorageBolt,
		BoltPath:            filepath.Join(dir, "ledger.db"),
		RedisURL:            "redis://" + mr.Addr(),
		ChartOfAccountsFile: chartFile,
	}
	res, err := Open(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer res.Close()

	assert.NotNil(t, res.Repos.BalanceCache)
	require.NotNil(t, res.Chart)
	assert.Equal(t, 2, res.Chart.Len())
}

func TestOpen_UnreachableRedisIsNotFatal(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageMemory, RedisURL: "redis://127.0.0.1:1"}
	res, err := Open(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	defer res.Close()
	assert.Nil(t, res.Repos.BalanceCache)
}

func TestOpen_BadChartFails(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageMemory, ChartOfAccountsFile: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := Open(context.Background(), cfg, discardLogger())
	assert.Error(t, err)
}
