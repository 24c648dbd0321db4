package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalApp "github.com/felixgeelhaar/pulse/internal/app"
	habitCommands "github.com/felixgeelhaar/pulse/internal/habits/application/commands"
	insightsQueries "github.com/felixgeelhaar/pulse/internal/insights/application/queries"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/commands"
	"github.com/felixgeelhaar/pulse/pkg/config"
	"github.com/felixgeelhaar/pulse/pkg/observability"
)

func setupTestApp(t *testing.T) *App {
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

	a := NewApp(container)
	SetApp(a)
	t.Cleanup(func() {
		SetApp(nil)
		container.Close()
	})
	return a
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

func seed(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()

	_, err := a.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		UserID:   a.CurrentUserID,
		Title:    "Write changelog",
		Priority: "high",
		DueDate:  "2099-01-01",
	})
	require.NoError(t, err)

	habit, err := a.CreateHabitHandler.Handle(ctx, habitCommands.CreateHabitCommand{
		UserID: a.CurrentUserID,
		Name:   "Stretch",
	})
	require.NoError(t, err)

	_, err = a.ToggleHabitCompletionHandler.Handle(ctx, habitCommands.ToggleHabitCompletionCommand{
		HabitID: habit.HabitID,
		UserID:  a.CurrentUserID,
		Date:    "2024-01-10",
	})
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "pulse dev")
	assert.Contains(t, out.String(), "commit: none")
	assert.Contains(t, out.String(), "go:     go")
}

func TestRequireApp(t *testing.T) {
	SetApp(nil)
	_, err := RequireApp()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = runCommand(t, exportCmd)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestExportCommand(t *testing.T) {
	a := setupTestApp(t)
	seed(t, a)

	t.Run("yaml to stdout", func(t *testing.T) {
		out, err := runCommand(t, exportCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "user_id: "+config.DefaultUserID)
		assert.Contains(t, out, "title: Write changelog")
		assert.Contains(t, out, "name: Stretch")
		assert.Contains(t, out, "2024-01-10")
	})

	t.Run("json to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exports", "pulse.json")
		exportFormat, exportOutput = "json", path
		t.Cleanup(func() { exportFormat, exportOutput = "yaml", "" })

		out, err := runCommand(t, exportCmd)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var snapshot map[string]any
		require.NoError(t, json.Unmarshal(data, &snapshot))
		assert.Len(t, snapshot["tasks"], 1)
		assert.Len(t, snapshot["habits"], 1)
		assert.Contains(t, snapshot, "today")
	})

	t.Run("unknown format", func(t *testing.T) {
		exportFormat = "csv"
		t.Cleanup(func() { exportFormat = "yaml" })

		_, err := runCommand(t, exportCmd)
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestOutboxCommands(t *testing.T) {
	a := setupTestApp(t)
	seed(t, a)

	t.Run("status shows pending messages", func(t *testing.T) {
		out, err := runCommand(t, outboxStatusCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "pending:       3")
		assert.Equal(t, float64(3), a.Metrics.GetGauge(observability.MetricOutboxPending))
	})

	t.Run("flush publishes them", func(t *testing.T) {
		out, err := runCommand(t, outboxFlushCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "Published 3 messages.")
		assert.Equal(t, int64(3), a.Metrics.GetCounter(observability.MetricEventsPublished))

		out, err = runCommand(t, outboxStatusCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "pending:       0")
		assert.Contains(t, out, "published:     3")
	})

	t.Run("purge keeps recent messages", func(t *testing.T) {
		out, err := runCommand(t, outboxPurgeCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted 0 published messages.")
	})

	t.Run("purge rejects a non-positive retention", func(t *testing.T) {
		require.NoError(t, outboxPurgeCmd.Flags().Set("days", "0"))
		t.Cleanup(func() {
			purgeDays = 30
			outboxPurgeCmd.Flags().Lookup("days").Changed = false
		})

		_, err := runCommand(t, outboxPurgeCmd)
		assert.ErrorContains(t, err, "--days must be positive")
	})
}

func TestHealthCommand(t *testing.T) {
	setupTestApp(t)

	t.Run("text", func(t *testing.T) {
		out, err := runCommand(t, healthCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "healthy")
		assert.Contains(t, out, "database")
		assert.Contains(t, out, "eventbus")
	})

	t.Run("json", func(t *testing.T) {
		healthJSON = true
		t.Cleanup(func() { healthJSON = false })

		out, err := runCommand(t, healthCmd)
		require.NoError(t, err)

		var report map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "healthy", report["status"])
	})
}

func TestMigrateCommand(t *testing.T) {
	setupTestApp(t)

	out, err := runCommand(t, migrateCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Database is up to date")
}

func TestInstrument(t *testing.T) {
	a := setupTestApp(t)

	root := &cobra.Command{Use: "pulse"}
	var seen context.Context
	root.AddCommand(&cobra.Command{
		Use:         "probe",
		Annotations: Writes,
		RunE: func(cmd *cobra.Command, args []string) error {
			seen = cmd.Context()
			_, err := a.CreateHabitHandler.Handle(cmd.Context(), habitCommands.CreateHabitCommand{
				UserID: a.CurrentUserID,
				Name:   "Read",
			})
			return err
		},
	})
	instrument(root)

	root.SetArgs([]string{"probe"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	require.NotNil(t, seen)
	assert.Equal(t, "pulse probe", observability.OperationFromContext(seen))
	assert.Equal(t, int64(1), a.Metrics.GetCounter(observability.MetricOperationTotal, observability.T(observability.OperationKey, "pulse probe")))

	counts, err := a.Container.OutboxRepo.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Pending)
	assert.Equal(t, 1, counts.Published)
}

func TestFocusCommand(t *testing.T) {
	a := setupTestApp(t)

	unit, tick := focusUnit, focusTick
	focusUnit, focusTick = 20*time.Millisecond, 5*time.Millisecond
	t.Cleanup(func() {
		focusUnit, focusTick = unit, tick
		focusDuration, focusBreak = 25, 0
	})

	t.Run("a finished timer logs a completed session", func(t *testing.T) {
		focusDuration, focusBreak = 2, 1

		out, err := runCommand(t, focusCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "Focus session complete!")
		assert.Contains(t, out, "Logged 2 minutes")
		assert.Contains(t, out, "Break complete!")
	})

	t.Run("an interrupted timer logs the minutes spent", func(t *testing.T) {
		focusDuration, focusBreak = 1000, 0

		ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
		defer cancel()
		var out bytes.Buffer
		focusCmd.SetOut(&out)
		focusCmd.SetContext(ctx)

		require.NoError(t, focusCmd.RunE(focusCmd, nil))
		assert.Contains(t, out.String(), "Session interrupted.")
	})

	t.Run("sessions reach the report", func(t *testing.T) {
		report, err := a.InsightsService.DistractionReport(context.Background(), insightsQueries.GetDistractionReportQuery{UserID: a.CurrentUserID, Days: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, report.Focus.Sessions)
		assert.InDelta(t, 0.5, report.Focus.CompletionRate, 0.001)
	})

	t.Run("rejects a zero duration", func(t *testing.T) {
		focusDuration = 0
		_, err := runCommand(t, focusCmd)
		assert.ErrorContains(t, err, "--duration")
	})
}
