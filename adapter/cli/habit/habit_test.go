package habit

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/adapter/cli/clitest"
	"github.com/felixgeelhaar/pulse/internal/habits/application/queries"
)

var idPattern = regexp.MustCompile(`ID: ([0-9a-f-]{36})`)

func createHabit(t *testing.T, args ...string) string {
	t.Helper()
	out, err := clitest.Run(t, Cmd, append([]string{"create"}, args...)...)
	require.NoError(t, err)
	match := idPattern.FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	return match[1]
}

func TestHabitCommands(t *testing.T) {
	app := clitest.Setup(t)

	id := createHabit(t, "Meditate")

	t.Run("list shows the new habit unchecked", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Meditate (daily)")
		assert.Contains(t, out, "[ ]")
		assert.Contains(t, out, "Today: 0/1 done (0%)")
	})

	t.Run("toggle completes today and starts a streak", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "toggle", id)
		require.NoError(t, err)
		assert.Contains(t, out, "Done for")
		assert.Contains(t, out, "Streak: 1 (best: 1)")

		out, err = clitest.Run(t, Cmd, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "[x]")
		assert.Contains(t, out, "Today: 1/1 done (100%)")
	})

	t.Run("toggling again undoes it", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "toggle", id)
		require.NoError(t, err)
		assert.Contains(t, out, "Undone for")
		assert.Contains(t, out, "Streak: 0 (best: 0)")
	})

	t.Run("toggling a past day", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "toggle", id, "--date", "2024-01-09")
		require.NoError(t, err)

		result, err := app.ListHabitsHandler.Handle(context.Background(), queries.ListHabitsQuery{UserID: app.CurrentUserID})
		require.NoError(t, err)
		require.Len(t, result.Habits, 1)
		assert.Equal(t, 1, result.Habits[0].TotalCompletions)
	})

	t.Run("stats", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "stats", id, "--window", "7")
		require.NoError(t, err)
		assert.Contains(t, out, "Meditate")
		assert.Contains(t, out, "Last 7 days:")
	})

	t.Run("flushes events after writes", func(t *testing.T) {
		counts, err := app.Container.OutboxRepo.Counts(context.Background())
		require.NoError(t, err)
		assert.Zero(t, counts.Pending)
		assert.Equal(t, 4, counts.Published)
	})
}

func TestHabitCommands_Errors(t *testing.T) {
	clitest.Setup(t)

	t.Run("invalid id", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "toggle", "not-an-id")
		assert.ErrorContains(t, err, "invalid habit id")
	})

	t.Run("unknown frequency", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "create", "Swim", "--frequency", "hourly")
		assert.Error(t, err)
	})

	t.Run("unknown habit", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "toggle", "00000000-0000-0000-0000-00000000abcd")
		assert.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No habits found")
	})
}
