package insights

import (
	"github.com/spf13/cobra"
)

// Cmd is the insights command group
var Cmd = &cobra.Command{
	Use:     "insights",
	Short:   "Log focus and distractions, and read reports",
	Aliases: []string{"in"},
	Long: `Log focus sessions and distractions as they happen, then review
distraction patterns and the daily report.`,
}

func init() {
	Cmd.AddCommand(focusCmd)
	Cmd.AddCommand(distractionCmd)
	Cmd.AddCommand(distractionsCmd)
	Cmd.AddCommand(reportCmd)
}
