// Package task holds the `pulse task` commands.
package task

import "github.com/spf13/cobra"

// Cmd groups the task commands.
var Cmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
	Long: `Add tasks, complete them, and view them by day, week or category.

Views: all, today, week, overdue. Sort by priority or due date.`,
}

func init() {
	Cmd.AddCommand(addCmd, listCmd, doneCmd, statsCmd)
}
