package goal

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/goals/application/queries"
)

var (
	statusFilter   string
	showMilestones bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List goals with progress",
	Aliases: []string{"ls"},
	Long: `List goals, soonest target date first.

Examples:
  pulse goal list
  pulse goal list --status active --milestones`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.ListGoalsHandler.Handle(cmd.Context(), queries.ListGoalsQuery{
			UserID: app.CurrentUserID,
			Status: statusFilter,
		})
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Goals) == 0 {
			fmt.Fprintln(out, "No goals found. Create one with: pulse goal create \"Title\"")
			return nil
		}

		fmt.Fprintln(out, cli.Section(fmt.Sprintf("Goals (%d)", len(result.Goals))))
		for _, g := range result.Goals {
			printGoal(out, g, showMilestones)
		}
		fmt.Fprintf(out, "\nAverage progress: %.0f%%\n", result.AverageProgress)
		return nil
	},
}

func printGoal(out io.Writer, g queries.GoalDTO, withMilestones bool) {
	fmt.Fprintf(out, "%s %s\n", g.Title, cli.StyleSubtle.Render("["+g.Status+"]"))
	fmt.Fprintf(out, "    %s\n", cli.ProgressBar(g.Progress, 20))
	if g.DaysRemaining != nil {
		days := *g.DaysRemaining
		switch {
		case days < 0:
			fmt.Fprintf(out, "    %s\n", cli.StyleError.Render(fmt.Sprintf("target %s passed %d days ago", g.TargetDate, -days)))
		default:
			fmt.Fprintf(out, "    target %s (%d days left)\n", g.TargetDate, days)
		}
	}
	if withMilestones {
		for _, m := range g.Milestones {
			line := fmt.Sprintf("    %s %s", cli.Check(m.Completed), m.Title)
			if m.DueDate != "" {
				line += cli.StyleSubtle.Render(" due " + m.DueDate.String())
			}
			fmt.Fprintln(out, line)
			fmt.Fprintf(out, "        %s\n", cli.StyleSubtle.Render("ID: "+m.ID.String()))
		}
	}
	fmt.Fprintf(out, "    %s\n", cli.StyleSubtle.Render("Goal ID: "+g.ID.String()))
}

func init() {
	listCmd.Flags().StringVar(&statusFilter, "status", "", "filter by status (active, paused, completed)")
	listCmd.Flags().BoolVarP(&showMilestones, "milestones", "m", false, "show milestones")
}
