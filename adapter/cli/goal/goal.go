package goal

import (
	"github.com/spf13/cobra"
)

// Cmd is the goal command group
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals and milestones",
	Long: `Create goals, break them into milestones, and track progress.

A goal is completed when all of its milestones are done.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(milestoneCmd)
	Cmd.AddCommand(pauseCmd)
	Cmd.AddCommand(resumeCmd)
	Cmd.AddCommand(suggestCmd)
}
