// Package dbtest opens migrated throwaway databases for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/migrations"
)

// OpenSQLite returns a migrated SQLite database in t's temp dir, closed on cleanup.
func OpenSQLite(t testing.TB) database.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "pulse.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = migrations.Run(ctx, conn, "")
	require.NoError(t, err)
	return conn
}
