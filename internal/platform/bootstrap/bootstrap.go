package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/general_ledger/internal/adapters/cache/rediscache"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger/internal/platform/chart"
	"github.com/SscSPs/general_ledger/internal/platform/config"
	"github.com/SscSPs/general_ledger/internal/repositories/database/boltdb"
	"github.com/SscSPs/general_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/general_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/general_ledger/pkg/database"
)

// Resources are the stores and reference data selected by configuration.
type Resources struct {
	Repos portsrepo.RepositoryProvider
	Chart *domain.ChartOfAccounts // nil without CHART_OF_ACCOUNTS_FILE

	closers []func()
}

// Open builds the repositories for cfg.StorageDriver, attaches the Redis
// balance cache when configured and loads the chart of accounts.
// The caller must Close the result.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Resources, error) {
	res := &Resources{}

	if err := res.openStorage(ctx, cfg, logger); err != nil {
		res.Close()
		return nil, err
	}

	if cfg.RedisURL != "" {
		client, err := rediscache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			// caching is an optimisation; run without it
			logger.Warn("Balance cache unavailable, continuing without it", slog.String("error", err.Error()))
		} else {
			res.Repos.BalanceCache = rediscache.NewBalanceCache(client)
			res.closers = append(res.closers, func() {
				if err := client.Close(); err != nil {
					logger.Error("Error closing redis client", slog.String("error", err.Error()))
				}
			})
			logger.Info("Balance cache enabled", slog.Duration("ttl", cfg.BalanceCacheTTL))
		}
	}

	if cfg.ChartOfAccountsFile != "" {
		coa, err := chart.Load(cfg.ChartOfAccountsFile)
		if err != nil {
			res.Close()
			return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
		}
		res.Chart = coa
		logger.Info("Chart of accounts loaded",
			slog.String("file", cfg.ChartOfAccountsFile),
			slog.Int("accounts", coa.Len()),
			slog.Bool("validation", cfg.ValidateAccounts))
	}

	return res, nil
}

func (r *Resources) openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return fmt.Errorf("failed to initialize database pool: %w", err)
		}
		r.closers = append(r.closers, func() { database.ClosePgxPool(pool) })
		r.Repos = pgsql.NewRepositoryProvider(pool)

	case config.StorageBolt:
		store, err := boltdb.Open(cfg.BoltPath)
		if err != nil {
			return fmt.Errorf("failed to open bolt store: %w", err)
		}
		r.closers = append(r.closers, func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing bolt store", slog.String("error", err.Error()))
			}
		})
		r.Repos = boltdb.NewRepositoryProvider(store)

	default:
		logger.Warn("Using in-memory storage; postings are lost on exit")
		r.Repos = memory.NewRepositoryProvider()
	}

	logger.Info("Storage ready", slog.String("driver", cfg.StorageDriver))
	return nil
}

// Close releases everything Open acquired, in reverse order.
func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}
