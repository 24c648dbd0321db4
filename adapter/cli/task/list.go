package task

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/queries"
)

var (
	view         string
	sortBy       string
	listCategory string
	group        bool
	pendingOnly  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tasks",
	Aliases: []string{"ls"},
	Long: `List tasks.

Views:
  all      - every task (default)
  today    - due today, or created today without a due date
  week     - due or created in the current Sunday-to-Saturday week
  overdue  - open tasks due before today

Examples:
  pulse task list --view today --sort priority
  pulse task list --group --pending`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:      app.CurrentUserID,
			View:        view,
			Category:    listCategory,
			Sort:        sortBy,
			PendingOnly: pendingOnly,
			Group:       group,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		if group {
			for _, g := range result.Groups {
				fmt.Fprintln(out, cli.Section(fmt.Sprintf("%s (%d)", g.Category, len(g.Tasks))))
				printTasks(out, g.Tasks)
			}
			return nil
		}

		fmt.Fprintln(out, cli.Section(fmt.Sprintf("Tasks (%d)", len(result.Tasks))))
		printTasks(out, result.Tasks)
		return nil
	},
}

func printTasks(out io.Writer, tasks []queries.TaskDTO) {
	for _, t := range tasks {
		details := t.Priority
		if t.DueDate != "" {
			details += ", due " + t.DueDate
		}
		if t.TimeEstimate > 0 {
			details += fmt.Sprintf(", %dm", t.TimeEstimate)
		}
		if t.FocusMode {
			details += ", focus"
		}
		fmt.Fprintf(out, "%s %s (%s)\n", cli.Check(t.Completed), t.Title, details)
		fmt.Fprintf(out, "    %s\n", cli.StyleSubtle.Render("ID: "+t.ID.String()))
	}
}

func init() {
	listCmd.Flags().StringVar(&view, "view", "all", "view (all, today, week, overdue)")
	listCmd.Flags().StringVar(&sortBy, "sort", "", "sort by (priority, due)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().BoolVar(&group, "group", false, "group by category")
	listCmd.Flags().BoolVar(&pendingOnly, "pending", false, "hide completed tasks")
}
