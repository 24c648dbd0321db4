package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/habits/application/commands"
)

var toggleDate string

var toggleCmd = &cobra.Command{
	Use:   "toggle [habit-id]",
	Short: "Mark a habit done, or undo it",
	Long: `Toggle a habit's completion for a day. Toggling the same day twice
restores the original state.

Examples:
  pulse habit toggle 4b0c...
  pulse habit toggle 4b0c... --date 2024-01-09`,
	Args:        cobra.ExactArgs(1),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		habitID, err := cli.ParseID("habit", args[0])
		if err != nil {
			return err
		}

		result, err := app.ToggleHabitCompletionHandler.Handle(cmd.Context(), commands.ToggleHabitCompletionCommand{
			HabitID: habitID,
			UserID:  app.CurrentUserID,
			Date:    toggleDate,
		})
		if err != nil {
			return fmt.Errorf("failed to toggle habit: %w", err)
		}

		out := cmd.OutOrStdout()
		if result.Completed {
			fmt.Fprintf(out, "%s %s\n", cli.StyleSuccess.Render("Done for"), result.Date)
		} else {
			fmt.Fprintf(out, "%s %s\n", cli.StyleWarning.Render("Undone for"), result.Date)
		}
		fmt.Fprintf(out, "  Streak: %d (best: %d)\n", result.CurrentStreak, result.LongestStreak)
		return nil
	},
}

func init() {
	toggleCmd.Flags().StringVar(&toggleDate, "date", "", "day to toggle (YYYY-MM-DD, default: today)")
}
