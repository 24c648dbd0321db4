package insights

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/insights/application/commands"
	"github.com/felixgeelhaar/pulse/internal/insights/application/queries"
)

var (
	distractionType    string
	distractionSource  string
	distractionMinutes int
	distractionSession string
	reportDays         int
)

var distractionCmd = &cobra.Command{
	Use:   "distraction",
	Short: "Log a distraction",
	Long: `Log a distraction.

Types: social_media, notification, email, phone_call, colleague, noise,
internal_thought, other

Examples:
  pulse insights distraction -t notification --source slack -m 5
  pulse insights distraction -t colleague`,
	Args:        cobra.NoArgs,
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var sessionID *uuid.UUID
		if distractionSession != "" {
			id, err := cli.ParseID("focus session", distractionSession)
			if err != nil {
				return err
			}
			sessionID = &id
		}

		result, err := app.InsightsService.LogDistraction(cmd.Context(), commands.LogDistractionCommand{
			UserID:          app.CurrentUserID,
			Type:            distractionType,
			Source:          distractionSource,
			DurationMinutes: distractionMinutes,
			FocusSessionID:  sessionID,
		})
		if err != nil {
			return fmt.Errorf("failed to log distraction: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", cli.StyleWarning.Render("Logged distraction:"), distractionType)
		fmt.Fprintf(out, "  ID: %s\n", result.DistractionID)
		return nil
	},
}

var distractionsCmd = &cobra.Command{
	Use:   "distractions",
	Short: "Summarize recent distractions and focus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		report, err := app.InsightsService.DistractionReport(cmd.Context(), queries.GetDistractionReportQuery{
			UserID: app.CurrentUserID,
			Days:   reportDays,
		})
		if err != nil {
			return fmt.Errorf("failed to build distraction report: %w", err)
		}

		out := cmd.OutOrStdout()
		d := report.Distractions
		fmt.Fprintln(out, cli.Section(fmt.Sprintf("Last %d days (since %s)", report.Days, report.Since)))
		if d.Count == 0 {
			fmt.Fprintln(out, "  No distractions logged.")
		} else {
			fmt.Fprintf(out, "  Distractions: %d (%d today)\n", d.Count, d.TodayCount)
			fmt.Fprintf(out, "  Time lost:    %dm (avg %.1fm)\n", d.TotalMinutes, d.AverageMinutes)
			if d.MostFrequentType != "" {
				fmt.Fprintf(out, "  Most common:  %s\n", d.MostFrequentType)
			}
			for _, s := range d.TopSources {
				fmt.Fprintf(out, "    %-16s %d\n", s.Source, s.Count)
			}
		}
		fmt.Fprintf(out, "  Focus:        %d sessions, %dm, %s completed\n",
			report.Focus.Sessions, report.Focus.Minutes, cli.Percent(report.Focus.CompletionRate))

		if len(d.Patterns) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.StyleWarning.Render("Patterns:"))
			for _, p := range d.Patterns {
				fmt.Fprintf(out, "  - %s\n", p)
			}
		}
		return nil
	},
}

func init() {
	distractionCmd.Flags().StringVarP(&distractionType, "type", "t", "other", "distraction type")
	distractionCmd.Flags().StringVar(&distractionSource, "source", "", "where it came from (app, person)")
	distractionCmd.Flags().IntVarP(&distractionMinutes, "minutes", "m", 0, "minutes lost")
	distractionCmd.Flags().StringVar(&distractionSession, "session", "", "focus session it interrupted")

	distractionsCmd.Flags().IntVarP(&reportDays, "days", "d", queries.DefaultReportDays, "days to look back")
}
