package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/adapter/cli/clitest"
)

func TestMoodCommands(t *testing.T) {
	clitest.Setup(t)

	t.Run("log", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "log", "2", "--date", "2024-01-02", "--note", "tired")
		require.NoError(t, err)
		assert.Contains(t, out, "Logged mood 2 for 2024-01-02")
	})

	t.Run("logging the same day again replaces it", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "log", "1", "--date", "2024-01-02", "--note", "tired")
		require.NoError(t, err)
		assert.Contains(t, out, "Updated mood 1 for 2024-01-02")
	})

	t.Run("summary shows the trend", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "log", "5", "--date", "2024-01-12")
		require.NoError(t, err)

		out, err := clitest.Run(t, Cmd, "summary", "--date", "2024-01-14")
		require.NoError(t, err)
		assert.Contains(t, out, "Mood, last 14 days")
		assert.Contains(t, out, "Average: 3.0 (2 entries)")
		assert.Contains(t, out, "Trend:   improving")
		assert.Contains(t, out, "Best:    5 on 2024-01-12")
		assert.Contains(t, out, "2024-01-02 *")
		assert.Contains(t, out, "tired")
	})

	t.Run("a narrow window has too little data", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "summary", "--date", "2024-01-14", "-w", "3")
		require.NoError(t, err)
		assert.Contains(t, out, "Average: 5.0 (1 entries)")
		assert.Contains(t, out, "insufficient data")
	})
}

func TestMoodCommands_Errors(t *testing.T) {
	clitest.Setup(t)

	t.Run("score out of range", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "log", "7")
		assert.Error(t, err)
	})

	t.Run("score not a number", func(t *testing.T) {
		_, err := clitest.Run(t, Cmd, "log", "great")
		assert.ErrorContains(t, err, "invalid score")
	})

	t.Run("empty summary", func(t *testing.T) {
		out, err := clitest.Run(t, Cmd, "summary")
		require.NoError(t, err)
		assert.Contains(t, out, "No entries yet")
	})
}
