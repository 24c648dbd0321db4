// Package migrations applies the embedded Pulse schema.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

//go:embed postgres/*.sql
var postgresFS embed.FS

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version     TEXT PRIMARY KEY,
    applied_at  TEXT NOT NULL
)`

// Result lists the migrations applied by a Run.
type Result struct {
	Applied []string
	Skipped []string
}

// Run applies every pending migration for the connection's driver, each in
// its own transaction. For PostgreSQL a non-empty schema is created if
// missing and used as the search_path.
func Run(ctx context.Context, conn database.Connection, schema string) (*Result, error) {
	files, dir, err := migrationFiles(conn.Driver())
	if err != nil {
		return nil, err
	}

	if conn.Driver() == database.DriverPostgres && schema != "" {
		if _, err := conn.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(schema)); err != nil {
			return nil, fmt.Errorf("failed to create schema %s: %w", schema, err)
		}
	}

	applied, err := appliedVersions(ctx, conn, schema)
	if err != nil {
		return nil, err
	}

	uow := database.NewUnitOfWork(conn)
	result := &Result{}
	for _, file := range files {
		version := strings.TrimSuffix(file, ".up.sql")
		if applied[version] {
			result.Skipped = append(result.Skipped, version)
			continue
		}

		migration, err := fs.ReadFile(dir, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		err = sharedApplication.WithUnitOfWork(ctx, uow, func(txCtx context.Context) error {
			exec := database.ContextExecutor(txCtx, conn)
			if err := setSearchPath(txCtx, exec, conn.Driver(), schema); err != nil {
				return err
			}
			if _, err := exec.Exec(txCtx, string(migration)); err != nil {
				return err
			}
			_, err := exec.Exec(txCtx,
				`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				version, time.Now().UTC().Format(time.RFC3339),
			)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
		result.Applied = append(result.Applied, version)
	}

	return result, nil
}

func migrationFiles(driver database.Driver) ([]string, fs.FS, error) {
	var (
		root fs.FS
		name string
	)
	switch driver {
	case database.DriverSQLite:
		root, name = sqliteFS, "sqlite"
	case database.DriverPostgres:
		root, name = postgresFS, "postgres"
	default:
		return nil, nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	dir, err := fs.Sub(root, name)
	if err != nil {
		return nil, nil, err
	}
	entries, err := fs.ReadDir(dir, ".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, dir, nil
}

func appliedVersions(ctx context.Context, conn database.Connection, schema string) (map[string]bool, error) {
	exec := database.Bind(conn, conn.Driver())
	if err := setSearchPath(ctx, exec, conn.Driver(), schema); err != nil {
		return nil, err
	}
	if _, err := exec.Exec(ctx, createVersionsTable); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	rows, err := exec.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func setSearchPath(ctx context.Context, exec database.Executor, driver database.Driver, schema string) error {
	if driver != database.DriverPostgres || schema == "" {
		return nil
	}
	_, err := exec.Exec(ctx, "SET search_path TO "+pq.QuoteIdentifier(schema))
	return err
}
