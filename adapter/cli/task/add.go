package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/commands"
)

var (
	priority  string
	estimate  int
	category  string
	dueDate   string
	focusMode bool
)

var addCmd = &cobra.Command{
	Use:     "add [title]",
	Short:   "Add a new task",
	Aliases: []string{"create"},
	Long: `Add a new task.

Priorities: low, medium (default), high

Examples:
  pulse task add "Write quarterly report" -p high --due 2024-03-29
  pulse task add "Deep work on parser" -e 90 --focus --category work`,
	Args:        cobra.ExactArgs(1),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), commands.CreateTaskCommand{
			UserID:          app.CurrentUserID,
			Title:           args[0],
			Priority:        priority,
			EstimateMinutes: estimate,
			Category:        category,
			DueDate:         dueDate,
			FocusMode:       focusMode,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", cli.StyleSuccess.Render("Added task:"), args[0])
		fmt.Fprintf(out, "  ID: %s\n", result.TaskID)
		if dueDate != "" {
			fmt.Fprintf(out, "  Due: %s\n", dueDate)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (low, medium, high)")
	addCmd.Flags().IntVarP(&estimate, "estimate", "e", 0, "time estimate in minutes")
	addCmd.Flags().StringVar(&category, "category", "", "category")
	addCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().BoolVar(&focusMode, "focus", false, "needs a focus session")
}
