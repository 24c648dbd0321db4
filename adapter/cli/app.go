package cli

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	internalApp "github.com/felixgeelhaar/pulse/internal/app"
	goalCommands "github.com/felixgeelhaar/pulse/internal/goals/application/commands"
	goalQueries "github.com/felixgeelhaar/pulse/internal/goals/application/queries"
	habitCommands "github.com/felixgeelhaar/pulse/internal/habits/application/commands"
	habitQueries "github.com/felixgeelhaar/pulse/internal/habits/application/queries"
	insightsApp "github.com/felixgeelhaar/pulse/internal/insights/application"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/commands"
	"github.com/felixgeelhaar/pulse/internal/productivity/application/queries"
	wellnessCommands "github.com/felixgeelhaar/pulse/internal/wellness/application/commands"
	wellnessQueries "github.com/felixgeelhaar/pulse/internal/wellness/application/queries"
	"github.com/felixgeelhaar/pulse/pkg/config"
	"github.com/felixgeelhaar/pulse/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Task Handlers
	CreateTaskHandler   *commands.CreateTaskHandler
	CompleteTaskHandler *commands.CompleteTaskHandler
	ListTasksHandler    *queries.ListTasksHandler
	GetTaskStatsHandler *queries.GetTaskStatsHandler

	// Habit Handlers
	CreateHabitHandler           *habitCommands.CreateHabitHandler
	ToggleHabitCompletionHandler *habitCommands.ToggleHabitCompletionHandler
	ListHabitsHandler            *habitQueries.ListHabitsHandler
	GetHabitStatsHandler         *habitQueries.GetHabitStatsHandler

	// Goal Handlers
	CreateGoalHandler         *goalCommands.CreateGoalHandler
	AddMilestoneHandler       *goalCommands.AddMilestoneHandler
	ToggleMilestoneHandler    *goalCommands.ToggleMilestoneHandler
	RemoveMilestoneHandler    *goalCommands.RemoveMilestoneHandler
	SetGoalStatusHandler      *goalCommands.SetGoalStatusHandler
	ListGoalsHandler          *goalQueries.ListGoalsHandler
	GetGoalSuggestionsHandler *goalQueries.GetGoalSuggestionsHandler

	// Mood Handlers
	LogMoodHandler        *wellnessCommands.LogMoodHandler
	GetMoodSummaryHandler *wellnessQueries.GetMoodSummaryHandler

	// Insights Service
	InsightsService *insightsApp.Service

	// Runtime pieces used by the operational commands (outbox, worker,
	// migrate, health).
	Container *internalApp.Container
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *observability.InMemoryMetrics

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a CLI application backed by the container's handlers.
func NewApp(c *internalApp.Container) *App {
	return &App{
		CreateTaskHandler:            c.CreateTaskHandler,
		CompleteTaskHandler:          c.CompleteTaskHandler,
		ListTasksHandler:             c.ListTasksHandler,
		GetTaskStatsHandler:          c.GetTaskStatsHandler,
		CreateHabitHandler:           c.CreateHabitHandler,
		ToggleHabitCompletionHandler: c.ToggleHabitCompletionHandler,
		ListHabitsHandler:            c.ListHabitsHandler,
		GetHabitStatsHandler:         c.GetHabitStatsHandler,
		CreateGoalHandler:            c.CreateGoalHandler,
		AddMilestoneHandler:          c.AddMilestoneHandler,
		ToggleMilestoneHandler:       c.ToggleMilestoneHandler,
		RemoveMilestoneHandler:       c.RemoveMilestoneHandler,
		SetGoalStatusHandler:         c.SetGoalStatusHandler,
		ListGoalsHandler:             c.ListGoalsHandler,
		GetGoalSuggestionsHandler:    c.GetGoalSuggestionsHandler,
		LogMoodHandler:               c.LogMoodHandler,
		GetMoodSummaryHandler:        c.GetMoodSummaryHandler,
		InsightsService:              c.InsightsService,
		Container:                    c,
		Config:                       c.Config,
		Logger:                       c.Logger,
		Metrics:                      c.Metrics,
		CurrentUserID:                c.UserID,
	}
}

// Flush publishes the events the last write appended to the outbox.
func (a *App) Flush(ctx context.Context) {
	if a.Container != nil {
		a.Container.FlushOutbox(ctx)
	}
}

// Close releases the container.
func (a *App) Close() {
	if a.Container != nil {
		a.Container.Close()
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the global application or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}
