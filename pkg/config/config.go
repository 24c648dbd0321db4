package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "PULSE"

	// DefaultUserID is the single local user when none is configured.
	DefaultUserID = "00000000-0000-0000-0000-000000000001"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv        string
	LogLevel      string // empty uses the environment's default
	LogFormat     string
	UserID        string
	EncryptionKey string

	// Database. An empty DatabaseURL selects the local SQLite file.
	DatabaseURL    string
	DatabaseSchema string
	SQLitePath     string

	// Redis. Empty uses the in-process report cache.
	RedisURL       string
	ReportCacheTTL time.Duration

	// RabbitMQ. Empty uses the in-process event bus.
	RabbitMQURL      string
	RabbitMQExchange string
	RabbitMQQueue    string

	// Outbox
	OutboxPollInterval    time.Duration
	OutboxBatchSize       int
	OutboxMaxRetries      int
	OutboxRetentionDays   int
	OutboxCleanupInterval time.Duration
}

// defaults are applied under every key Load reads.
var defaults = map[string]any{
	"app_env":                 "development",
	"log_level":               "",
	"log_format":              "",
	"user_id":                 DefaultUserID,
	"encryption_key":          "",
	"database_url":            "",
	"database_schema":         "",
	"sqlite_path":             "",
	"redis_url":               "",
	"report_cache_ttl":        15 * time.Minute,
	"rabbitmq_url":            "",
	"rabbitmq_exchange":       "pulse.domain.events",
	"rabbitmq_queue":          "pulse.worker",
	"outbox_poll_interval":    500 * time.Millisecond,
	"outbox_batch_size":       100,
	"outbox_max_retries":      5,
	"outbox_retention_days":   30,
	"outbox_cleanup_interval": 24 * time.Hour,
}

// legacyEnv maps keys to the unprefixed variable names shared with other
// tooling (docker-compose, hosted databases).
var legacyEnv = map[string]string{
	"app_env":      "APP_ENV",
	"log_level":    "LOG_LEVEL",
	"database_url": "DATABASE_URL",
	"redis_url":    "REDIS_URL",
	"rabbitmq_url": "RABBITMQ_URL",
}

// Load loads configuration from the environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from the environment and, when path is set,
// from a YAML, TOML or JSON config file. Environment variables win over
// the file; PULSE_* variables win over their legacy names.
func LoadFile(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		AppEnv:        v.GetString("app_env"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		UserID:        v.GetString("user_id"),
		EncryptionKey: v.GetString("encryption_key"),

		DatabaseURL:    v.GetString("database_url"),
		DatabaseSchema: v.GetString("database_schema"),
		SQLitePath:     v.GetString("sqlite_path"),

		RedisURL:       v.GetString("redis_url"),
		ReportCacheTTL: v.GetDuration("report_cache_ttl"),

		RabbitMQURL:      v.GetString("rabbitmq_url"),
		RabbitMQExchange: v.GetString("rabbitmq_exchange"),
		RabbitMQQueue:    v.GetString("rabbitmq_queue"),

		OutboxPollInterval:    v.GetDuration("outbox_poll_interval"),
		OutboxBatchSize:       v.GetInt("outbox_batch_size"),
		OutboxMaxRetries:      v.GetInt("outbox_max_retries"),
		OutboxRetentionDays:   v.GetInt("outbox_retention_days"),
		OutboxCleanupInterval: v.GetDuration("outbox_cleanup_interval"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	if c.ReportCacheTTL < 0 {
		return fmt.Errorf("report_cache_ttl must not be negative: %s", c.ReportCacheTTL)
	}
	if c.OutboxBatchSize <= 0 {
		return fmt.Errorf("outbox_batch_size must be positive: %d", c.OutboxBatchSize)
	}
	if c.OutboxMaxRetries < 0 {
		return fmt.Errorf("outbox_max_retries must not be negative: %d", c.OutboxMaxRetries)
	}
	if c.OutboxPollInterval <= 0 {
		return fmt.Errorf("outbox_poll_interval must be positive: %s", c.OutboxPollInterval)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json: %q", c.LogFormat)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LocalMode reports whether Pulse runs against the zero-setup SQLite
// database rather than a PostgreSQL server.
func (c *Config) LocalMode() bool {
	return c.DatabaseURL == "" || strings.HasPrefix(c.DatabaseURL, "sqlite://") || strings.HasPrefix(c.DatabaseURL, "file:")
}
