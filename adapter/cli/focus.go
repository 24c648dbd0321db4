package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pulse/internal/insights/application/commands"
)

var (
	focusDuration int
	focusBreak    int
	focusTask     string
)

// focusUnit and focusTick scale the timer; tests shrink them.
var (
	focusUnit = time.Minute
	focusTick = time.Second
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run a focus timer and log the session",
	Long: `Run a focus timer and log the session when it ends.

A session that runs to the end is logged as completed. Ending it early
with Ctrl+C logs the minutes spent as an unfinished session.

Examples:
  pulse focus --duration 25           # 25 minute focus session
  pulse focus --duration 50 --break 10
  pulse focus --task 6f1c...          # focus on a specific task`,
	Aliases:     []string{"pomodoro", "timer"},
	Args:        cobra.NoArgs,
	Annotations: Writes,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}
		if focusDuration < 1 {
			return fmt.Errorf("--duration must be at least 1 minute")
		}

		var taskID *uuid.UUID
		if focusTask != "" {
			id, err := ParseID("task", focusTask)
			if err != nil {
				return err
			}
			taskID = &id
		}

		out := cmd.OutOrStdout()
		rule := strings.Repeat("=", 50)
		fmt.Fprintln(out, rule)
		fmt.Fprintln(out, StyleTitle.Render("  FOCUS MODE"))
		fmt.Fprintln(out, rule)
		if taskID != nil {
			fmt.Fprintf(out, "  Working on: task %s\n", taskID.String()[:8])
		}
		fmt.Fprintf(out, "  Duration: %d minutes\n", focusDuration)
		fmt.Fprintln(out, StyleSubtle.Render("  Press Ctrl+C to end the session early"))
		fmt.Fprintln(out)

		// The session is logged even when the command context is cancelled.
		ctx := cmd.Context()
		started := time.Now()
		completed := runTimer(ctx, out, "FOCUS", time.Duration(focusDuration)*focusUnit)
		minutes := focusDuration
		if !completed {
			minutes = int(time.Since(started) / focusUnit)
		}

		fmt.Fprintln(out)
		if minutes < 1 {
			fmt.Fprintln(out, StyleWarning.Render("  Session ended before a full minute, nothing logged."))
			return nil
		}

		result, err := a.InsightsService.LogFocusSession(context.WithoutCancel(ctx), commands.LogFocusSessionCommand{
			UserID:          a.CurrentUserID,
			DurationMinutes: minutes,
			Completed:       completed,
			TaskID:          taskID,
			StartedAt:       started,
		})
		if err != nil {
			return fmt.Errorf("failed to log focus session: %w", err)
		}

		if completed {
			fmt.Fprintln(out, StyleSuccess.Render("  Focus session complete!"))
		} else {
			fmt.Fprintln(out, StyleWarning.Render("  Session interrupted."))
		}
		fmt.Fprintf(out, "  Logged %d minutes (session %s)\n", minutes, result.SessionID.String()[:8])

		if completed && focusBreak > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, StylePrimary.Render("  BREAK TIME"))
			if runTimer(ctx, out, "BREAK", time.Duration(focusBreak)*focusUnit) {
				fmt.Fprintln(out, "\n  Break complete! Ready for the next session.")
			}
		}
		return nil
	},
}

// runTimer redraws a progress line every tick and reports whether the full
// duration elapsed.
func runTimer(ctx context.Context, out io.Writer, label string, duration time.Duration) bool {
	ticker := time.NewTicker(focusTick)
	defer ticker.Stop()

	end := time.Now().Add(duration)
	for {
		select {
		case <-ctx.Done():
			return false
		case now := <-ticker.C:
			remaining := end.Sub(now)
			if remaining <= 0 {
				fmt.Fprintf(out, "\r  [%s] %s - DONE!          ", label, formatDurationTimer(0))
				return true
			}

			progress := int(float64(duration-remaining) / float64(duration) * 100)
			fmt.Fprintf(out, "\r  [%s] %s %s", label, formatDurationTimer(remaining), ProgressBar(progress, 30))
		}
	}
}

func formatDurationTimer(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d", m, s)
}

func init() {
	focusCmd.Flags().IntVarP(&focusDuration, "duration", "d", 25, "focus duration in minutes")
	focusCmd.Flags().IntVarP(&focusBreak, "break", "b", 0, "break duration in minutes (0 = no break)")
	focusCmd.Flags().StringVarP(&focusTask, "task", "t", "", "task ID to focus on")

	rootCmd.AddCommand(focusCmd)
}
