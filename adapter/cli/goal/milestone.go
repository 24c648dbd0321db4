package goal

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/goals/application/commands"
)

var milestoneDue string

var milestoneCmd = &cobra.Command{
	Use:     "milestone",
	Short:   "Add, toggle or remove milestones",
	Aliases: []string{"ms"},
}

var milestoneAddCmd = &cobra.Command{
	Use:         "add [goal-id] [title]",
	Short:       "Add a milestone to a goal",
	Args:        cobra.ExactArgs(2),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		goalID, err := cli.ParseID("goal", args[0])
		if err != nil {
			return err
		}

		result, err := app.AddMilestoneHandler.Handle(cmd.Context(), commands.AddMilestoneCommand{
			GoalID:  goalID,
			UserID:  app.CurrentUserID,
			Title:   args[1],
			DueDate: milestoneDue,
		})
		if err != nil {
			return fmt.Errorf("failed to add milestone: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s #%d %s\n", cli.StyleSuccess.Render("Added milestone"), result.Order+1, args[1])
		fmt.Fprintf(out, "  ID: %s\n", result.MilestoneID)
		fmt.Fprintf(out, "  Progress: %d%%\n", result.Progress)
		return nil
	},
}

var milestoneToggleCmd = &cobra.Command{
	Use:         "toggle [goal-id] [milestone-id]",
	Short:       "Mark a milestone done or not done",
	Args:        cobra.ExactArgs(2),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		goalID, milestoneID, err := parseMilestoneArgs(args)
		if err != nil {
			return err
		}

		result, err := app.ToggleMilestoneHandler.Handle(cmd.Context(), commands.ToggleMilestoneCommand{
			GoalID:      goalID,
			MilestoneID: milestoneID,
			UserID:      app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to toggle milestone: %w", err)
		}

		printProgress(cmd.OutOrStdout(), result)
		return nil
	},
}

var milestoneRemoveCmd = &cobra.Command{
	Use:         "remove [goal-id] [milestone-id]",
	Short:       "Remove a milestone from a goal",
	Aliases:     []string{"rm"},
	Args:        cobra.ExactArgs(2),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		goalID, milestoneID, err := parseMilestoneArgs(args)
		if err != nil {
			return err
		}

		result, err := app.RemoveMilestoneHandler.Handle(cmd.Context(), commands.RemoveMilestoneCommand{
			GoalID:      goalID,
			MilestoneID: milestoneID,
			UserID:      app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to remove milestone: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), cli.StyleSuccess.Render("Removed milestone"))
		printProgress(cmd.OutOrStdout(), result)
		return nil
	},
}

func parseMilestoneArgs(args []string) (goalID, milestoneID uuid.UUID, err error) {
	g, err := cli.ParseID("goal", args[0])
	if err != nil {
		return goalID, milestoneID, err
	}
	m, err := cli.ParseID("milestone", args[1])
	if err != nil {
		return goalID, milestoneID, err
	}
	return g, m, nil
}

func printProgress(out io.Writer, result *commands.GoalProgressResult) {
	fmt.Fprintf(out, "  %s\n", cli.ProgressBar(result.Progress, 20))
	if result.Completed {
		fmt.Fprintln(out, cli.StyleSuccess.Render("  Goal completed!"))
		return
	}
	fmt.Fprintf(out, "  Status: %s\n", result.Status)
}

func init() {
	milestoneAddCmd.Flags().StringVar(&milestoneDue, "due", "", "due date (YYYY-MM-DD)")

	milestoneCmd.AddCommand(milestoneAddCmd)
	milestoneCmd.AddCommand(milestoneToggleCmd)
	milestoneCmd.AddCommand(milestoneRemoveCmd)
}
