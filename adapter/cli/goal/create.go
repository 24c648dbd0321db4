package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/goals/application/commands"
)

var (
	goalCategory string
	targetDate   string
	milestones   []string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new goal",
	Long: `Create a new goal, optionally with its first milestones.

Examples:
  pulse goal create "Run a half marathon" --target 2024-10-06
  pulse goal create "Learn Go" -m "Tour of Go" -m "Build a CLI" --category learning`,
	Args:        cobra.ExactArgs(1),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CreateGoalHandler.Handle(cmd.Context(), commands.CreateGoalCommand{
			UserID:     app.CurrentUserID,
			Title:      args[0],
			Category:   goalCategory,
			TargetDate: targetDate,
			Milestones: milestones,
		})
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", cli.StyleSuccess.Render("Created goal:"), args[0])
		fmt.Fprintf(out, "  ID: %s\n", result.GoalID)
		if len(result.MilestoneIDs) > 0 {
			fmt.Fprintf(out, "  Milestones: %d\n", len(result.MilestoneIDs))
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&goalCategory, "category", "", "category")
	createCmd.Flags().StringVar(&targetDate, "target", "", "target date (YYYY-MM-DD)")
	createCmd.Flags().StringArrayVarP(&milestones, "milestone", "m", nil, "milestone title (repeatable)")
}
