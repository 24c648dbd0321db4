package insights

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/insights/application/commands"
)

var (
	focusMinutes   int
	focusCompleted bool
	focusTask      string
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Log a finished focus session",
	Long: `Log a focus session that just ended.

Examples:
  pulse insights focus --minutes 50 --completed
  pulse insights focus -m 25 --task 6f1c...`,
	Args:        cobra.NoArgs,
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var taskID *uuid.UUID
		if focusTask != "" {
			id, err := cli.ParseID("task", focusTask)
			if err != nil {
				return err
			}
			taskID = &id
		}

		result, err := app.InsightsService.LogFocusSession(cmd.Context(), commands.LogFocusSessionCommand{
			UserID:          app.CurrentUserID,
			DurationMinutes: focusMinutes,
			Completed:       focusCompleted,
			TaskID:          taskID,
		})
		if err != nil {
			return fmt.Errorf("failed to log focus session: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d minutes\n", cli.StyleSuccess.Render("Logged focus session:"), focusMinutes)
		fmt.Fprintf(out, "  ID: %s\n", result.SessionID)
		return nil
	},
}

func init() {
	focusCmd.Flags().IntVarP(&focusMinutes, "minutes", "m", 25, "session length in minutes")
	focusCmd.Flags().BoolVar(&focusCompleted, "completed", false, "the session ran to the end")
	focusCmd.Flags().StringVar(&focusTask, "task", "", "task worked on")
}
