// Package clitest runs CLI commands against a throwaway SQLite database.
package clitest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	internalApp "github.com/felixgeelhaar/pulse/internal/app"
	"github.com/felixgeelhaar/pulse/pkg/config"
)

// Setup wires a container on a temp-dir SQLite database and installs it
// as the global CLI application for the duration of the test.
func Setup(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:              "test",
		UserID:              config.DefaultUserID,
		SQLitePath:          filepath.Join(t.TempDir(), "pulse.db"),
		ReportCacheTTL:      time.Minute,
		OutboxPollInterval:  50 * time.Millisecond,
		OutboxBatchSize:     100,
		OutboxMaxRetries:    5,
		OutboxRetentionDays: 30,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() {
		cli.SetApp(nil)
		container.Close()
	})
	return app
}

// Run executes cmd with args and returns its standard output. Flags are
// reset to their defaults first, and writes flush the outbox as they do
// in the real CLI.
func Run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	resetFlags(cmd)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	executed, err := cmd.ExecuteContextC(context.Background())
	if err == nil && cli.IsWrite(executed) {
		if app := cli.GetApp(); app != nil {
			app.Flush(context.Background())
		}
	}
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		// Set appends to slice flags, whose DefValue is the rendered "[]". Slice
		// flags in Pulse all default to empty.
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
