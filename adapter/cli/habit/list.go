package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/habits/application/queries"
)

var showDueToday bool

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List habits",
	Long:    `List habits with today's status and their current and longest streaks.`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.ListHabitsHandler.Handle(cmd.Context(), queries.ListHabitsQuery{
			UserID:       app.CurrentUserID,
			OnlyDueToday: showDueToday,
		})
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Habits) == 0 {
			fmt.Fprintln(out, "No habits found. Create one with: pulse habit create \"Habit name\"")
			return nil
		}

		fmt.Fprintln(out, cli.Section(fmt.Sprintf("Habits (%d) - %s", len(result.Habits), result.Today)))
		for _, h := range result.Habits {
			streak := ""
			if h.CurrentStreak > 0 {
				streak = fmt.Sprintf(" | streak: %d", h.CurrentStreak)
			}
			if h.LongestStreak > h.CurrentStreak {
				streak += fmt.Sprintf(" (best: %d)", h.LongestStreak)
			}

			fmt.Fprintf(out, "%s %s (%s)%s\n", cli.Check(h.CompletedToday), h.Name, h.Frequency, streak)
			fmt.Fprintf(out, "    %s\n", cli.StyleSubtle.Render(fmt.Sprintf("ID: %s | Total: %d completions", h.ID, h.TotalCompletions)))
		}

		fmt.Fprintf(out, "\nToday: %d/%d done (%s) | best streaks: current %d, longest %d\n",
			result.CompletedToday, len(result.Habits), cli.Percent(result.CompletionRateToday),
			result.BestStreaks.Current, result.BestStreaks.Longest)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&showDueToday, "due", false, "show only habits due today")
}
