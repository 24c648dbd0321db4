package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/goals/application/commands"
	"github.com/felixgeelhaar/pulse/internal/goals/domain"
)

var pauseCmd = statusCommand("pause", "Pause an active goal", domain.StatusPaused)

var resumeCmd = statusCommand("resume", "Resume a paused goal", domain.StatusActive)

func statusCommand(use, short string, status domain.Status) *cobra.Command {
	return &cobra.Command{
		Use:         use + " [goal-id]",
		Short:       short,
		Args:        cobra.ExactArgs(1),
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

			result, err := app.SetGoalStatusHandler.Handle(cmd.Context(), commands.SetGoalStatusCommand{
				GoalID: goalID,
				UserID: app.CurrentUserID,
				Status: status.String(),
			})
			if err != nil {
				return fmt.Errorf("failed to %s goal: %w", use, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Goal %s is now %s\n", goalID, result.Status)
			return nil
		},
	}
}
