package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/pkg/observability"
)

var purgeDays int

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Inspect and drive the event outbox",
	Long: `Domain events are written to the outbox in the same transaction as
the change that caused them and published from there.`,
}

var outboxStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show outbox message counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}

		counts, err := a.Container.OutboxRepo.Counts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count outbox messages: %w", err)
		}
		a.Metrics.Gauge(observability.MetricOutboxPending, float64(counts.Pending+counts.Retrying))
		a.Metrics.Gauge(observability.MetricOutboxDead, float64(counts.DeadLettered))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, Section("Outbox"))
		fmt.Fprintf(out, "  pending:       %d\n", counts.Pending)
		fmt.Fprintf(out, "  retrying:      %d\n", counts.Retrying)
		fmt.Fprintf(out, "  published:     %d\n", counts.Published)
		if counts.DeadLettered > 0 {
			fmt.Fprintf(out, "  dead-lettered: %s\n", StyleError.Render(fmt.Sprint(counts.DeadLettered)))
		} else {
			fmt.Fprintf(out, "  dead-lettered: %d\n", counts.DeadLettered)
		}
		return nil
	},
}

var outboxFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Publish every due message now",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}

		n, err := a.Container.OutboxProcessor.Drain(cmd.Context())
		if n > 0 {
			a.Metrics.Counter(observability.MetricEventsPublished, int64(n))
		}
		if err != nil {
			return fmt.Errorf("flushed %d messages before failing: %w", n, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published %d messages.\n", n)
		return nil
	},
}

var outboxPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete published messages past retention",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}

		var deleted int64
		if cmd.Flags().Changed("days") {
			if purgeDays <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			cutoff := time.Now().AddDate(0, 0, -purgeDays)
			deleted, err = a.Container.OutboxRepo.DeleteOld(cmd.Context(), cutoff)
		} else {
			deleted, err = a.Container.OutboxProcessor.Purge(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to purge outbox: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d published messages.\n", deleted)
		return nil
	},
}

func init() {
	outboxPurgeCmd.Flags().IntVar(&purgeDays, "days", 30, "retention in days (default: configured retention)")

	outboxCmd.AddCommand(outboxStatusCmd)
	outboxCmd.AddCommand(outboxFlushCmd)
	outboxCmd.AddCommand(outboxPurgeCmd)
	rootCmd.AddCommand(outboxCmd)
}
