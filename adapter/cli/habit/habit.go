// Package habit holds the `pulse habit` commands.
package habit

import "github.com/spf13/cobra"

// Cmd groups the habit commands.
var Cmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits", "h"},
	Short:   "Manage habits",
	Long: `Create habits, toggle daily completions, and follow your streaks.

The current streak counts consecutive completed days ending today; it
is 0 until today is toggled.`,
}

func init() {
	Cmd.AddCommand(createCmd, listCmd, toggleCmd, statsCmd)
}
