package insights

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/insights/application/queries"
)

var (
	reportDate    string
	reportRefresh bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the daily report",
	Long: `Show tasks, habits, goals, focus, distractions and mood for one day.

Reports are cached for a few minutes and rebuilt whenever something they
cover changes. Use --refresh to rebuild anyway.

Examples:
  pulse insights report
  pulse insights report --date 2024-03-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		report, err := app.InsightsService.DailyReport(cmd.Context(), queries.GetDailyReportQuery{
			UserID:  app.CurrentUserID,
			Date:    reportDate,
			Refresh: reportRefresh,
		})
		if err != nil {
			return fmt.Errorf("failed to build daily report: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), cli.StyleReportBox.Render(renderReport(report)))
		return nil
	},
}

func renderReport(r *queries.DailyReport) string {
	var b strings.Builder

	title := "Daily report " + r.Date.String()
	if r.Cached {
		title += cli.StyleSubtle.Render(" (cached)")
	}
	b.WriteString(cli.StyleTitle.Render(title) + "\n\n")

	b.WriteString(cli.StylePrimary.Render("Tasks") + "\n")
	fmt.Fprintf(&b, "  Completion: %s\n", cli.Percent(r.TaskCompletionRate))
	if r.OverdueTasks > 0 {
		fmt.Fprintf(&b, "  %s\n", cli.StyleError.Render(fmt.Sprintf("Overdue: %d", r.OverdueTasks)))
	}
	for _, t := range r.TodayTasks {
		fmt.Fprintf(&b, "  - %s\n", t)
	}

	b.WriteString(cli.StylePrimary.Render("Habits") + "\n")
	fmt.Fprintf(&b, "  Done: %d (%s)\n", r.HabitsCompleted, cli.Percent(r.HabitCompletionRate))
	fmt.Fprintf(&b, "  Best streaks: current %d, longest %d\n", r.BestStreaks.Current, r.BestStreaks.Longest)

	b.WriteString(cli.StylePrimary.Render("Goals") + "\n")
	fmt.Fprintf(&b, "  Active: %d (avg %.0f%%)\n", r.ActiveGoals, r.ActiveGoalsProgress)

	b.WriteString(cli.StylePrimary.Render("Focus") + "\n")
	fmt.Fprintf(&b, "  Sessions: %d, %dm\n", r.Focus.Sessions, r.Focus.Minutes)
	fmt.Fprintf(&b, "  Distractions: %d this week, %d today\n", r.Distractions.Count, r.Distractions.TodayCount)
	for _, p := range r.Distractions.Patterns {
		fmt.Fprintf(&b, "  ! %s\n", p)
	}

	b.WriteString(cli.StylePrimary.Render("Mood") + "\n")
	if r.Mood.EntryCount == 0 {
		b.WriteString("  No entries yet")
	} else {
		fmt.Fprintf(&b, "  Average %.1f over %d entries, %s", r.Mood.Average, r.Mood.EntryCount, strings.ReplaceAll(string(r.Mood.Trend), "_", " "))
	}
	return b.String()
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "report day (YYYY-MM-DD, default today)")
	reportCmd.Flags().BoolVar(&reportRefresh, "refresh", false, "rebuild instead of using the cache")
}
