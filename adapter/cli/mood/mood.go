package mood

import (
	"github.com/spf13/cobra"
)

// Cmd is the mood command group
var Cmd = &cobra.Command{
	Use:   "mood",
	Short: "Track daily mood",
	Long:  `Record one mood score (1-5) per day and follow the trend.`,
}

func init() {
	Cmd.AddCommand(logCmd)
	Cmd.AddCommand(summaryCmd)
}
