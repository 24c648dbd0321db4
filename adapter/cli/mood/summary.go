package mood

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/wellness/application/queries"
	"github.com/felixgeelhaar/pulse/internal/wellness/domain"
)

var (
	window      int
	summaryDate string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize mood over recent days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.GetMoodSummaryHandler.Handle(cmd.Context(), queries.GetMoodSummaryQuery{
			UserID:     app.CurrentUserID,
			WindowDays: window,
			Date:       summaryDate,
		})
		if err != nil {
			return fmt.Errorf("failed to summarize mood: %w", err)
		}

		out := cmd.OutOrStdout()
		s := result.Summary
		fmt.Fprintln(out, cli.Section(fmt.Sprintf("Mood, last %d days", s.WindowDays)))
		if s.EntryCount == 0 {
			fmt.Fprintln(out, "  No entries yet. Log one with: pulse mood log 4")
			return nil
		}

		fmt.Fprintf(out, "  Average: %.1f (%d entries)\n", s.Average, s.EntryCount)
		fmt.Fprintf(out, "  Trend:   %s\n", renderTrend(s.Trend))
		fmt.Fprintf(out, "  Best:    %d on %s\n", s.BestScore, s.BestDay)
		fmt.Fprintln(out)
		for _, e := range result.Entries {
			line := fmt.Sprintf("  %s %s", e.Date, strings.Repeat("*", e.Score))
			if e.Note != "" {
				line += cli.StyleSubtle.Render("  " + e.Note)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func renderTrend(t domain.Trend) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	switch t {
	case domain.TrendImproving:
		return cli.StyleSuccess.Render(label)
	case domain.TrendDeclining:
		return cli.StyleWarning.Render(label)
	default:
		return label
	}
}

func init() {
	summaryCmd.Flags().IntVarP(&window, "window", "w", queries.DefaultMoodWindowDays, "days to summarize")
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "last day of the window (default today)")
}
