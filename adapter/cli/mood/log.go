package mood

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/wellness/application/commands"
)

var (
	note    string
	logDate string
)

var logCmd = &cobra.Command{
	Use:   "log [score]",
	Short: "Log today's mood (1-5)",
	Long: `Log a mood score from 1 (rough) to 5 (great). Logging again for
the same day replaces the earlier entry.

Examples:
  pulse mood log 4 --note "good run"
  pulse mood log 2 --date 2024-03-01`,
	Args:        cobra.ExactArgs(1),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		score, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid score %q: must be a number from 1 to 5", args[0])
		}

		result, err := app.LogMoodHandler.Handle(cmd.Context(), commands.LogMoodCommand{
			UserID: app.CurrentUserID,
			Score:  score,
			Note:   note,
			Date:   logDate,
		})
		if err != nil {
			return fmt.Errorf("failed to log mood: %w", err)
		}

		verb := "Logged"
		if result.Replaced {
			verb = "Updated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s mood %d for %s\n", cli.StyleSuccess.Render(verb), score, result.Date)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&note, "note", "n", "", "short note")
	logCmd.Flags().StringVar(&logDate, "date", "", "day (YYYY-MM-DD, default today)")
}
