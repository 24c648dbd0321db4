package insights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/adapter/cli/clitest"
	"github.com/felixgeelhaar/pulse/internal/insights/application/queries"
)

func TestInsightsCommands(t *testing.T) {
	app := clitest.Setup(t)

	t.Run("log focus session", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "focus", "--minutes", "50", "--completed")
		require.NoError(t, err)
		assert.Contains(t, out, "Logged focus session: 50 minutes")
	})

	t.Run("log distractions", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "distraction", "-t", "notification", "--source", "slack", "-m", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "Logged distraction: notification")

		_, err = clitest.Run(t, Cmd, "distraction", "-t", "notification", "--source", "slack", "-m", "3")
		require.NoError(t, err)
		_, err = clitest.Run(t, Cmd, "distraction", "-t", "colleague")
		require.NoError(t, err)
	})

	t.Run("distraction summary", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "distractions")
		require.NoError(t, err)
		assert.Contains(t, out, "Last 7 days")
		assert.Contains(t, out, "Distractions: 3 (3 today)")
		assert.Contains(t, out, "Time lost:    8m")
		assert.Contains(t, out, "Most common:  notification")
		assert.Contains(t, out, "slack")
		assert.Contains(t, out, "Focus:        1 sessions, 50m, 100% completed")
	})

	t.Run("report is cached until something changes", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "report")
		require.NoError(t, err)
		assert.Contains(t, out, "Daily report")
		assert.NotContains(t, out, "(cached)")
		assert.Contains(t, out, "Sessions: 1, 50m")

		out, err = clitest.Run(t, Cmd, "report")
		require.NoError(t, err)
		assert.Contains(t, out, "(cached)")

		out, err = clitest.Run(t, Cmd, "report", "--refresh")
		require.NoError(t, err)
		assert.NotContains(t, out, "(cached)")

		_, err = clitest.Run(t, Cmd, "focus", "-m", "25", "--completed")
		require.NoError(t, err)

		out, err = clitest.Run(t, Cmd, "report")
		require.NoError(t, err)
		assert.NotContains(t, out, "(cached)")
		assert.Contains(t, out, "Sessions: 2, 75m")
	})

	t.Run("report for a past day", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "report", "--date", "2024-01-10")
		require.NoError(t, err)
		assert.Contains(t, out, "Daily report 2024-01-10")
		assert.Contains(t, out, "No entries yet")
	})

	t.Run("distraction report matches the service", func(t *testing.T) {
		report, err := app.InsightsService.DistractionReport(context.Background(), queries.GetDistractionReportQuery{UserID: app.CurrentUserID, Days: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, report.Distractions.Count)
	})
}

func TestInsightsCommands_Errors(t *testing.T) {
	clitest.Setup(t)

	t.Run("unknown distraction type", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "distraction", "-t", "cat")
		assert.Error(t, err)
	})

	t.Run("focus session too long", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "focus", "-m", "600")
		assert.Error(t, err)
	})

	t.Run("invalid task id", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "focus", "--task", "abc")
		assert.ErrorContains(t, err, "invalid task id")
	})

	t.Run("empty summary", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "distractions")
		require.NoError(t, err)
		assert.Contains(t, out, "No distractions logged.")
	})
}
