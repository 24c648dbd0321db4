package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/queries"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task completion statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		stats, err := app.GetTaskStatsHandler.Handle(cmd.Context(), queries.GetTaskStatsQuery{UserID: app.CurrentUserID})
		if err != nil {
			return fmt.Errorf("failed to load task stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.Section("Tasks"))
		fmt.Fprintf(out, "  Total:      %d\n", stats.Total)
		fmt.Fprintf(out, "  Completed:  %d (%s)\n", stats.Completed, cli.Percent(stats.CompletionRate))
		fmt.Fprintf(out, "  Pending:    %d\n", stats.Pending)
		fmt.Fprintf(out, "  Due today:  %d\n", stats.DueToday)
		if stats.Overdue > 0 {
			fmt.Fprintf(out, "  Overdue:    %s\n", cli.StyleError.Render(fmt.Sprint(stats.Overdue)))
		} else {
			fmt.Fprintf(out, "  Overdue:    %d\n", stats.Overdue)
		}
		fmt.Fprintf(out, "  Remaining:  %dm of %dm estimated\n", stats.RemainingMinutes, stats.EstimatedMinutes)
		return nil
	},
}
