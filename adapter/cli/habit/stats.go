package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/habits/application/queries"
)

var statsWindow int

var statsCmd = &cobra.Command{
	Use:   "stats [habit-id]",
	Short: "Show streaks and completion rate for a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		habitID, err := cli.ParseID("habit", args[0])
		if err != nil {
			return err
		}

		stats, err := app.GetHabitStatsHandler.Handle(cmd.Context(), queries.GetHabitStatsQuery{
			HabitID:    habitID,
			UserID:     app.CurrentUserID,
			WindowDays: statsWindow,
		})
		if err != nil {
			return fmt.Errorf("failed to load habit stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.Section(stats.Habit.Name))
		fmt.Fprintf(out, "  Current streak:  %d\n", stats.Habit.CurrentStreak)
		fmt.Fprintf(out, "  Longest streak:  %d\n", stats.Habit.LongestStreak)
		fmt.Fprintf(out, "  Completions:     %d\n", stats.Habit.TotalCompletions)
		fmt.Fprintf(out, "  Last %d days:    %s\n", stats.WindowDays, cli.Percent(stats.CompletionRate))
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsWindow, "window", "w", queries.DefaultStatsWindowDays, "completion-rate window in days")
}
