package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply every pending migration to the configured database.

The local SQLite database is migrated automatically on startup; PostgreSQL
deployments run this once per release.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}

		result, err := migrations.Run(cmd.Context(), a.Container.DBConn, a.Config.DatabaseSchema)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Applied) == 0 {
			fmt.Fprintf(out, "Database is up to date (%s, %d migrations).\n", a.Container.DBDriver, len(result.Skipped))
			return nil
		}
		for _, version := range result.Applied {
			fmt.Fprintf(out, "%s %s\n", StyleSuccess.Render("applied"), version)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
