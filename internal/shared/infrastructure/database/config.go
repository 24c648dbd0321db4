package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds database configuration.
type Config struct {
	// Driver selects the backend. Empty or "auto" detects it from URL.
	Driver Driver

	// URL is the PostgreSQL connection string, or a SQLite path or URL.
	URL string

	// SQLitePath is the SQLite database file. Defaults to ~/.pulse/pulse.db.
	SQLitePath string

	// Schema is the PostgreSQL schema used for Pulse tables. Empty means
	// the server default search_path.
	Schema string

	// MaxConns caps the PostgreSQL pool size.
	MaxConns int
}

// ResolvedDriver returns the configured driver, detecting it when unset.
func (c Config) ResolvedDriver() Driver {
	if c.Driver == "" || c.Driver == "auto" {
		return DetectDriver(c.URL)
	}
	return c.Driver
}

type connector func(ctx context.Context, cfg Config) (Connection, error)

// Connectors are registered by the driver sub-packages from init, so that
// importing database alone does not pull in both drivers.
var connectors = map[Driver]connector{}

// RegisterPostgresDriver registers the PostgreSQL connection factory.
func RegisterPostgresDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	connectors[DriverPostgres] = fn
}

// RegisterSQLiteDriver registers the SQLite connection factory.
func RegisterSQLiteDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	connectors[DriverSQLite] = fn
}

// NewConnection opens a connection for the configured driver.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.ResolvedDriver()
	if driver == DriverSQLite && cfg.SQLitePath == "" && cfg.URL != "" {
		cfg.SQLitePath = SQLitePathFromURL(cfg.URL)
	}

	connect, ok := connectors[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported or unregistered database driver: %s", driver)
	}
	return connect(ctx, cfg)
}

// DefaultSQLitePath returns the default SQLite database path.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".pulse", "pulse.db")
}

// EnsureDirectory creates the parent directory of path if needed.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
