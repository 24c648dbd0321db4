package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/pkg/observability"
)

var healthJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the database, report cache and event bus",
	Long: `Run the health checks of every backend Pulse is wired to.

Exits with an error when a component is unhealthy; a degraded cache or
event bus only prints a warning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}

		health := a.Container.Health.GetOverallHealth(cmd.Context())
		out := cmd.OutOrStdout()

		if healthJSON {
			data, err := health.ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			names := make([]string, 0, len(health.Checks))
			for name := range health.Checks {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintf(out, "%s %s\n", StyleTitle.Render("Status:"), renderStatus(health.Status))
			for _, name := range names {
				check := health.Checks[name]
				fmt.Fprintf(out, "  %-10s %s %s\n", name, renderStatus(check.Status), StyleSubtle.Render(check.Message))
			}
		}

		if health.Status == observability.HealthStatusUnhealthy {
			return fmt.Errorf("pulse is unhealthy")
		}
		return nil
	},
}

func renderStatus(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusHealthy:
		return StyleSuccess.Render(string(status))
	case observability.HealthStatusDegraded:
		return StyleWarning.Render(string(status))
	default:
		return StyleError.Render(string(status))
	}
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "print the health report as JSON")
	rootCmd.AddCommand(healthCmd)
}
