package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/general_ledger/internal/adapters/events/kafka"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/core/services"
	"github.com/SscSPs/general_ledger/internal/handlers"
	"github.com/SscSPs/general_ledger/internal/jobs"
	"github.com/SscSPs/general_ledger/internal/middleware"
	"github.com/SscSPs/general_ledger/internal/platform/bootstrap"
	"github.com/SscSPs/general_ledger/internal/platform/config"
	"github.com/SscSPs/general_ledger/internal/relay"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithLogger(ctx, logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	res, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	var ledgerOptions []services.LedgerServiceOption
	var journalRelay *relay.JournalRelay
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("Error closing kafka publisher", slog.String("error", err.Error()))
			}
		}()
		journalRelay = relay.NewJournalRelay(res.Repos.JournalRepo, publisher, relay.WithInterval(cfg.RelayInterval))
		ledgerOptions = append(ledgerOptions, services.WithPostedListener(journalRelay.Notify))
		logger.Info("Journal relay enabled",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaTopic))
	}

	container, err := services.NewServiceContainer(ctx, cfg, res.Repos, res.Chart, ledgerOptions...)
	if err != nil {
		return err
	}

	router, err := newRouter(cfg, logger, container)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if journalRelay != nil {
		g.Go(func() error { return journalRelay.Run(gctx) })
	}
	if cfg.RecurringInterval > 0 {
		job := jobs.NewRecurringJob(container.Recurring, cfg.RecurringInterval, cfg.RecurringLookback)
		g.Go(func() error { return job.Run(gctx) })
		logger.Info("Recurring job enabled",
			slog.Duration("interval", cfg.RecurringInterval),
			slog.Duration("lookback", cfg.RecurringLookback))
	}
	return g.Wait()
}

func newRouter(cfg *config.Config, logger *slog.Logger, container *portssvc.ServiceContainer) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		r.Use(middleware.RateLimit(limiter))
	}

	handlers.RegisterRoutes(r, container)
	return r, nil
}
