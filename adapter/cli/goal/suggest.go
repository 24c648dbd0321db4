package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/adapter/cli"
	"github.com/felixgeelhaar/pulse/internal/goals/application/queries"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [goal-id]",
	Short: "Suggest next steps for a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		goalID, err := cli.ParseID("goal", args[0])
		if err != nil {
			return err
		}

		result, err := app.GetGoalSuggestionsHandler.Handle(cmd.Context(), queries.GetGoalSuggestionsQuery{
			GoalID: goalID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to load suggestions: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.Section(result.Goal.Title))
		fmt.Fprintf(out, "  %s\n\n", cli.ProgressBar(result.Goal.Progress, 20))
		for _, s := range result.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
		if len(result.RelatedTasks) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.StyleSubtle.Render("Related tasks:"))
			for _, title := range result.RelatedTasks {
				fmt.Fprintf(out, "  * %s\n", title)
			}
		}
		return nil
	},
}
