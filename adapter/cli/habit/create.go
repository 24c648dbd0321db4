package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/habits/application/commands"
)

var (
	frequency string
	color     string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new habit",
	Long: `Create a new habit to track.

Frequencies:
  daily   - Every day
  weekly  - Once per week

Examples:
  pulse habit create "Morning meditation"
  pulse habit create "Long run" -f weekly --color orange`,
	Args:        cobra.ExactArgs(1),
	Annotations: cli.Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CreateHabitHandler.Handle(cmd.Context(), commands.CreateHabitCommand{
			UserID:    app.CurrentUserID,
			Name:      args[0],
			Frequency: frequency,
			Color:     color,
		})
		if err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", cli.StyleSuccess.Render("Created habit:"), args[0])
		fmt.Fprintf(out, "  ID: %s\n", result.HabitID)
		fmt.Fprintf(out, "  Frequency: %s\n", frequency)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&frequency, "frequency", "f", "daily", "habit frequency (daily, weekly)")
	createCmd.Flags().StringVar(&color, "color", "", "display color")
}
