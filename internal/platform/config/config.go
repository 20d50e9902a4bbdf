package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      slog.Level
	StorageDriver string

	// Postgres
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	// Embedded store
	BoltPath string

	// Balance cache; empty RedisURL disables caching
	RedisURL        string
	BalanceCacheTTL time.Duration

	// Chart of accounts
	ChartOfAccountsFile string
	ValidateAccounts    bool

	// Posted-journal relay; empty KafkaBrokers disables the relay
	KafkaBrokers  []string
	KafkaTopic    string
	RelayInterval time.Duration

	// Recurring entry job; zero disables it
	RecurringInterval time.Duration
	RecurringLookback time.Duration

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_DRIVER", StorageMemory)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("BOLT_PATH", "ledger.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("BALANCE_CACHE_TTL", "10m")
	viper.SetDefault("CHART_OF_ACCOUNTS_FILE", "")
	viper.SetDefault("VALIDATE_ACCOUNTS", false)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "ledger.journal-posted")
	viper.SetDefault("RELAY_INTERVAL", "5s")
	viper.SetDefault("RECURRING_INTERVAL", "0")
	viper.SetDefault("RECURRING_LOOKBACK", "168h")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = parseLevel(viper.GetString("LOG_LEVEL"))

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER")))
	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres, StorageBolt:
	default:
		slog.Warn("Unknown STORAGE_DRIVER, using memory", slog.String("value", cfg.StorageDriver))
		cfg.StorageDriver = StorageMemory
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.BoltPath = viper.GetString("BOLT_PATH")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.BalanceCacheTTL = durationOrDefault("BALANCE_CACHE_TTL", 10*time.Minute)

	cfg.ChartOfAccountsFile = viper.GetString("CHART_OF_ACCOUNTS_FILE")
	cfg.ValidateAccounts = viper.GetBool("VALIDATE_ACCOUNTS")
	if cfg.ValidateAccounts && cfg.ChartOfAccountsFile == "" {
		slog.Warn("VALIDATE_ACCOUNTS is set without CHART_OF_ACCOUNTS_FILE; account validation disabled")
		cfg.ValidateAccounts = false
	}

	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	cfg.RelayInterval = durationOrDefault("RELAY_INTERVAL", 5*time.Second)

	cfg.RecurringInterval = durationOrDefault("RECURRING_INTERVAL", 0)
	cfg.RecurringLookback = durationOrDefault("RECURRING_LOOKBACK", 7*24*time.Hour)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// durationOrDefault falls back to def when the value is missing or unparsable.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			slog.Warn("Invalid duration, using default",
				slog.String("key", key), slog.String("value", raw), slog.Duration("default", def))
		}
		return def
	}
	return d
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
