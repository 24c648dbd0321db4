package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	goalQueries "github.com/felixgeelhaar/pulse/internal/goals/application/queries"
	habitQueries "github.com/felixgeelhaar/pulse/internal/habits/application/queries"
	insightsQueries "github.com/felixgeelhaar/pulse/internal/insights/application/queries"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/queries"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/security"
	wellnessQueries "github.com/felixgeelhaar/pulse/internal/wellness/application/queries"
)

// exportMoodWindow is how far back mood entries are exported.
const exportMoodWindow = 365

var (
	exportFormat string
	exportOutput string
)

// Snapshot is everything Pulse knows about the current user.
type Snapshot struct {
	ExportedAt time.Time                    `json:"exported_at" yaml:"exported_at"`
	UserID     string                       `json:"user_id" yaml:"user_id"`
	Tasks      []queries.TaskDTO            `json:"tasks" yaml:"tasks"`
	Habits     []habitQueries.HabitDTO      `json:"habits" yaml:"habits"`
	Goals      []goalQueries.GoalDTO        `json:"goals" yaml:"goals"`
	Moods      []wellnessQueries.MoodDTO    `json:"moods" yaml:"moods"`
	Today      *insightsQueries.DailyReport `json:"today" yaml:"today"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as YAML or JSON",
	Long: `Export tasks, habits with their completion history, goals with
milestones, mood entries from the last year, and today's report.

Examples:
  pulse export                         # YAML to stdout
  pulse export --format json -o out.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}

		snapshot, err := buildSnapshot(cmd.Context(), a)
		if err != nil {
			return err
		}

		data, err := encodeSnapshot(snapshot, exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		path, err := security.SafeWriteFile(exportOutput, data)
		if err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks, %d habits, %d goals, %d moods to %s\n",
			len(snapshot.Tasks), len(snapshot.Habits), len(snapshot.Goals), len(snapshot.Moods), path)
		return nil
	},
}

func buildSnapshot(ctx context.Context, a *App) (*Snapshot, error) {
	userID := a.CurrentUserID
	snapshot := &Snapshot{ExportedAt: time.Now().UTC(), UserID: userID.String()}

	tasks, err := a.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	snapshot.Tasks = tasks.Tasks

	habits, err := a.ListHabitsHandler.Handle(ctx, habitQueries.ListHabitsQuery{UserID: userID, IncludeHistory: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	snapshot.Habits = habits.Habits

	goals, err := a.ListGoalsHandler.Handle(ctx, goalQueries.ListGoalsQuery{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	snapshot.Goals = goals.Goals

	moods, err := a.GetMoodSummaryHandler.Handle(ctx, wellnessQueries.GetMoodSummaryQuery{UserID: userID, WindowDays: exportMoodWindow})
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}
	snapshot.Moods = moods.Entries

	report, err := a.InsightsService.DailyReport(ctx, insightsQueries.GetDailyReportQuery{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	snapshot.Today = report

	return snapshot, nil
}

func encodeSnapshot(snapshot *Snapshot, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml", "":
		return yaml.Marshal(snapshot)
	case "json":
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: yaml, json)", format)
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "export format (yaml, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
