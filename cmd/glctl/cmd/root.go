// Package cmd provides the glctl commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/core/services"
	"github.com/SscSPs/general_ledger/internal/platform/bootstrap"
	"github.com/SscSPs/general_ledger/internal/platform/config"
)

var debug bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "glctl",
	Short: "Administer the general ledger store",
	Long: `glctl operates directly on the ledger store selected by STORAGE_DRIVER
(bolt or postgres), using the same configuration as the server.

Example:
  glctl trial-balance --to 2024-12-31
  glctl period lock 2024 11 --actor controller
  glctl recurring process --from 2024-01-01 --to 2024-03-31`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelWarn
		if debug {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(trialBalanceCmd)
	rootCmd.AddCommand(periodCmd)
	rootCmd.AddCommand(recurringCmd)
	rootCmd.AddCommand(journalCmd)
}

// withServices opens the configured store, runs fn and releases the store.
func withServices(ctx context.Context, fn func(*portssvc.ServiceContainer) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.StorageDriver == config.StorageMemory {
		slog.Warn("STORAGE_DRIVER is memory; glctl changes will not persist")
	}

	res, err := bootstrap.Open(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer res.Close()

	container, err := services.NewServiceContainer(ctx, cfg, res.Repos, res.Chart)
	if err != nil {
		return err
	}
	return fn(container)
}
