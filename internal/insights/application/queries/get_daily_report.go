package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	goalDomain "github.com/felixgeelhaar/pulse/internal/goals/domain"
	habitDomain "github.com/felixgeelhaar/pulse/internal/habits/domain"
	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/cache"
	wellnessDomain "github.com/felixgeelhaar/pulse/internal/wellness/domain"
)

const (
	// DailyReportTTL bounds how long a cached report is served. Writes
	// invalidate earlier through the report cache subscriber.
	DailyReportTTL = 15 * time.Minute

	// DailyReportDistractionDays is the distraction window ending at the
	// report day.
	DailyReportDistractionDays = 7

	// DailyReportMoodDays is the mood window ending at the report day.
	DailyReportMoodDays = 14
)

// DailyReportPrefix returns the cache key prefix of a user's daily reports.
func DailyReportPrefix(userID uuid.UUID) string {
	return fmt.Sprintf("report:daily:%s:", userID)
}

// DailyReportKey returns the cache key of one daily report.
func DailyReportKey(userID uuid.UUID, day sharedDomain.DateKey) string {
	return DailyReportPrefix(userID) + day.String()
}

// DailyReport summarizes one day across every context.
type DailyReport struct {
	Date        sharedDomain.DateKey `json:"date" yaml:"date"`
	GeneratedAt time.Time            `json:"generated_at" yaml:"generated_at"`

	TaskCompletionRate float64  `json:"task_completion_rate" yaml:"task_completion_rate"`
	OverdueTasks       int      `json:"overdue_tasks" yaml:"overdue_tasks"`
	TodayTasks         []string `json:"today_tasks" yaml:"today_tasks"`

	HabitsCompleted     int                 `json:"habits_completed" yaml:"habits_completed"`
	HabitCompletionRate float64             `json:"habit_completion_rate" yaml:"habit_completion_rate"`
	BestStreaks         habitDomain.Streaks `json:"best_streaks" yaml:"best_streaks"`

	ActiveGoals         int     `json:"active_goals" yaml:"active_goals"`
	ActiveGoalsProgress float64 `json:"active_goals_progress" yaml:"active_goals_progress"`

	Focus        FocusStats                 `json:"focus" yaml:"focus"`
	Distractions domain.DistractionInsights `json:"distractions" yaml:"distractions"`
	Mood         wellnessDomain.MoodSummary `json:"mood" yaml:"mood"`

	// Cached reports whether the report was served from the cache.
	Cached bool `json:"-" yaml:"-"`
}

// GetDailyReportQuery asks for the report of one day.
type GetDailyReportQuery struct {
	UserID uuid.UUID
	// Date is the report day; empty or unparsable means today.
	Date string
	// Refresh bypasses the cache.
	Refresh bool
}

// GetDailyReportHandler builds daily reports and caches them.
type GetDailyReportHandler struct {
	taskRepo        task.Repository
	habitRepo       habitDomain.Repository
	goalRepo        goalDomain.Repository
	distractionRepo domain.DistractionRepository
	sessionRepo     domain.FocusSessionRepository
	moodRepo        wellnessDomain.MoodRepository
	cache           cache.Cache
	ttl             time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// DailyReportSources groups the repositories a daily report reads from.
type DailyReportSources struct {
	Tasks         task.Repository
	Habits        habitDomain.Repository
	Goals         goalDomain.Repository
	Distractions  domain.DistractionRepository
	FocusSessions domain.FocusSessionRepository
	Moods         wellnessDomain.MoodRepository
}

// NewGetDailyReportHandler creates a new GetDailyReportHandler.
func NewGetDailyReportHandler(sources DailyReportSources, c cache.Cache, logger *slog.Logger) *GetDailyReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetDailyReportHandler{
		taskRepo:        sources.Tasks,
		habitRepo:       sources.Habits,
		goalRepo:        sources.Goals,
		distractionRepo: sources.Distractions,
		sessionRepo:     sources.FocusSessions,
		moodRepo:        sources.Moods,
		cache:           c,
		ttl:             DailyReportTTL,
		logger:          logger,
		now:             time.Now,
	}
}

// WithTTL overrides how long reports stay cached. Non-positive values
// keep DailyReportTTL.
func (h *GetDailyReportHandler) WithTTL(ttl time.Duration) *GetDailyReportHandler {
	if ttl > 0 {
		h.ttl = ttl
	}
	return h
}

// Handle executes the GetDailyReportQuery. Cache failures are logged and
// the report is computed from the repositories.
func (h *GetDailyReportHandler) Handle(ctx context.Context, query GetDailyReportQuery) (*DailyReport, error) {
	now := h.now()
	day := sharedApplication.DayOrToday(query.Date, now)
	key := DailyReportKey(query.UserID, day)

	if !query.Refresh {
		cached, err := cache.GetJSON[DailyReport](ctx, h.cache, key)
		switch {
		case err == nil:
			cached.Cached = true
			return cached, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			h.logger.Warn("daily report cache read failed", "key", key, "error", err)
		}
	}

	report, err := h.build(ctx, query.UserID, day, now)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, h.cache, key, report, h.ttl); err != nil {
		h.logger.Warn("daily report cache write failed", "key", key, "error", err)
	}
	return report, nil
}

func (h *GetDailyReportHandler) build(ctx context.Context, userID uuid.UUID, day sharedDomain.DateKey, now time.Time) (*DailyReport, error) {
	// Past days are judged as of their last instant.
	dayStart, _ := day.Time()
	reference := now
	if day != sharedDomain.TodayKey(now) {
		reference = dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	report := &DailyReport{Date: day, GeneratedAt: now}

	tasks, err := h.taskRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	report.TaskCompletionRate = task.CompletionRate(tasks)
	report.OverdueTasks = len(task.FilterOverdue(tasks, reference))
	report.TodayTasks = make([]string, 0)
	for _, t := range task.FilterToday(tasks, reference) {
		report.TodayTasks = append(report.TodayTasks, t.Title)
	}

	habits, err := h.habitRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	for i := range habits {
		habits[i] = habitDomain.RecomputeStreaks(habits[i], day)
	}
	report.HabitsCompleted = len(habitDomain.CompletedOn(habits, day))
	report.HabitCompletionRate = habitDomain.HabitsCompletionRateOn(habits, day)
	report.BestStreaks = habitDomain.BestStreaks(habits)

	goals, err := h.goalRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	active := goalDomain.FilterByStatus(goals, goalDomain.StatusActive)
	report.ActiveGoals = len(active)
	report.ActiveGoalsProgress = goalDomain.AverageProgress(active)

	sessions, err := h.sessionRepo.FindSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load focus sessions: %w", err)
	}
	report.Focus = focusStats(domain.SessionsOn(sessions, day))

	since := dayStart.AddDate(0, 0, -(DailyReportDistractionDays - 1))
	distractions, err := h.distractionRepo.FindSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load distractions: %w", err)
	}
	report.Distractions = domain.AnalyzeDistractions(before(distractions, reference), reference)

	from := sharedDomain.AddDays(day, -(DailyReportMoodDays - 1))
	moods, err := h.moodRepo.FindRange(ctx, userID, from, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	report.Mood = wellnessDomain.SummarizeMood(moods, DailyReportMoodDays, day)

	return report, nil
}

func before(ds []domain.Distraction, t time.Time) []domain.Distraction {
	result := make([]domain.Distraction, 0, len(ds))
	for _, d := range ds {
		if !d.Timestamp.After(t) {
			result = append(result, d)
		}
	}
	return result
}
