package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalDomain "github.com/felixgeelhaar/pulse/internal/goals/domain"
	goalPersistence "github.com/felixgeelhaar/pulse/internal/goals/infrastructure/persistence"
	habitDomain "github.com/felixgeelhaar/pulse/internal/habits/domain"
	habitPersistence "github.com/felixgeelhaar/pulse/internal/habits/infrastructure/persistence"
	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	"github.com/felixgeelhaar/pulse/internal/insights/infrastructure/persistence"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	taskPersistence "github.com/felixgeelhaar/pulse/internal/productivity/infrastructure/persistence"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/cache"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/dbtest"
	wellnessDomain "github.com/felixgeelhaar/pulse/internal/wellness/domain"
	wellnessPersistence "github.com/felixgeelhaar/pulse/internal/wellness/infrastructure/persistence"
)

var fixedNow = time.Date(2024, time.January, 10, 15, 0, 0, 0, time.Local)

func at(day int, hour int) time.Time {
	return time.Date(2024, time.January, day, hour, 0, 0, 0, time.Local)
}

type fixture struct {
	userID  uuid.UUID
	sources DailyReportSources
}

// seed stores one user's week: three tasks, a daily habit, two goals, two
// focus sessions, three distractions and a mood entry.
func seed(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	conn := dbtest.OpenSQLite(t)
	userID := uuid.New()

	f := fixture{
		userID: userID,
		sources: DailyReportSources{
			Tasks:         taskPersistence.NewSQLTaskRepository(conn),
			Habits:        habitPersistence.NewSQLHabitRepository(conn),
			Goals:         goalPersistence.NewSQLGoalRepository(conn),
			Distractions:  persistence.NewSQLDistractionRepository(conn),
			FocusSessions: persistence.NewSQLFocusSessionRepository(conn),
			Moods:         wellnessPersistence.NewSQLMoodRepository(conn, nil),
		},
	}

	newTask := func(title, due string) task.Task {
		tk, err := task.NewTask(userID, title, value_objects.PriorityMedium, 30, at(5, 9))
		require.NoError(t, err)
		tk.DueDate = due
		return tk
	}
	done, err := newTask("Renew passport", "").Complete(at(6, 9))
	require.NoError(t, err)
	for _, tk := range []task.Task{newTask("Write report", "2024-01-10"), newTask("Pay rent", "2024-01-08"), done} {
		require.NoError(t, f.sources.Tasks.Save(ctx, tk))
	}

	habit, err := habitDomain.NewHabit(userID, "Meditate", habitDomain.FrequencyDaily, "", "2024-01-01")
	require.NoError(t, err)
	habit.CompletionDates = []sharedDomain.DateKey{"2024-01-09", "2024-01-10"}
	require.NoError(t, f.sources.Habits.Save(ctx, habit))

	active := newGoal(t, userID, "Read twelve books", 2, 1)
	finished := newGoal(t, userID, "Run a 10k", 1, 1)
	require.Equal(t, goalDomain.StatusCompleted, finished.Status)
	require.NoError(t, f.sources.Goals.Save(ctx, active))
	require.NoError(t, f.sources.Goals.Save(ctx, finished))

	for _, s := range []struct {
		minutes int
		at      time.Time
	}{{25, at(10, 10)}, {50, at(9, 14)}} {
		session, err := domain.NewFocusSession(userID, s.minutes, s.at, true)
		require.NoError(t, err)
		require.NoError(t, f.sources.FocusSessions.Save(ctx, session))
	}

	for _, d := range []struct {
		minutes int
		at      time.Time
	}{{5, at(10, 11)}, {3, at(10, 12)}, {20, at(2, 12)}} {
		distraction, err := domain.NewDistraction(userID, domain.DistractionEmail, "inbox", d.minutes, d.at)
		require.NoError(t, err)
		require.NoError(t, f.sources.Distractions.Save(ctx, distraction))
	}

	mood, err := wellnessDomain.NewMoodEntry(userID, "2024-01-10", 4, "", at(10, 8))
	require.NoError(t, err)
	require.NoError(t, f.sources.Moods.Save(ctx, mood))

	return f
}

func newGoal(t *testing.T, userID uuid.UUID, title string, milestones, done int) goalDomain.Goal {
	t.Helper()
	goal, err := goalDomain.NewGoal(userID, title, "", "", at(1, 9))
	require.NoError(t, err)
	for i := 0; i < milestones; i++ {
		m, err := goalDomain.NewMilestone("step", "")
		require.NoError(t, err)
		goal, _ = goalDomain.AddMilestoneToGoal(goal, m)
	}
	for i := 0; i < done; i++ {
		goal, _ = goalDomain.ToggleMilestoneCompletion(goal, goal.Milestones[i].ID, "2024-01-05")
	}
	return goal
}

func TestGetDailyReportHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("builds today's report and caches it", func(t *testing.T) {
		f := seed(t)
		c := cache.NewMemoryCache()
		handler := NewGetDailyReportHandler(f.sources, c, nil)
		handler.now = func() time.Time { return fixedNow }

		report, err := handler.Handle(ctx, GetDailyReportQuery{UserID: f.userID})

		require.NoError(t, err)
		assert.False(t, report.Cached)
		assert.Equal(t, sharedDomain.DateKey("2024-01-10"), report.Date)
		assert.InDelta(t, 1.0/3, report.TaskCompletionRate, 1e-9)
		assert.Equal(t, 1, report.OverdueTasks)
		assert.Equal(t, []string{"Write report"}, report.TodayTasks)
		assert.Equal(t, 1, report.HabitsCompleted)
		assert.InDelta(t, 1.0, report.HabitCompletionRate, 1e-9)
		assert.Equal(t, habitDomain.Streaks{Current: 2, Longest: 2}, report.BestStreaks)
		assert.Equal(t, 1, report.ActiveGoals)
		assert.InDelta(t, 50.0, report.ActiveGoalsProgress, 1e-9)
		assert.Equal(t, FocusStats{Sessions: 1, Minutes: 25, CompletionRate: 1}, report.Focus)
		assert.Equal(t, 2, report.Distractions.Count)
		assert.Equal(t, 2, report.Distractions.TodayCount)
		assert.Equal(t, []domain.SourceCount{{Source: "inbox", Count: 2}}, report.Distractions.TopSources)
		assert.Equal(t, 1, report.Mood.EntryCount)
		assert.InDelta(t, 4.0, report.Mood.Average, 1e-9)

		again, err := handler.Handle(ctx, GetDailyReportQuery{UserID: f.userID, Date: "2024-01-10"})
		require.NoError(t, err)
		assert.True(t, again.Cached)
		assert.Equal(t, report.TodayTasks, again.TodayTasks)
		assert.Equal(t, report.Focus, again.Focus)

		fresh, err := handler.Handle(ctx, GetDailyReportQuery{UserID: f.userID, Refresh: true})
		require.NoError(t, err)
		assert.False(t, fresh.Cached)
	})

	t.Run("past days are judged as of that day", func(t *testing.T) {
		f := seed(t)
		handler := NewGetDailyReportHandler(f.sources, cache.NewMemoryCache(), nil)
		handler.now = func() time.Time { return fixedNow }

		report, err := handler.Handle(ctx, GetDailyReportQuery{UserID: f.userID, Date: "2024-01-09"})

		require.NoError(t, err)
		assert.Equal(t, sharedDomain.DateKey("2024-01-09"), report.Date)
		assert.Empty(t, report.TodayTasks)
		assert.Equal(t, 1, report.OverdueTasks)
		assert.Equal(t, habitDomain.Streaks{Current: 1, Longest: 2}, report.BestStreaks)
		assert.Equal(t, FocusStats{Sessions: 1, Minutes: 50, CompletionRate: 1}, report.Focus)
		assert.Equal(t, 0, report.Distractions.Count)
		assert.Equal(t, 0, report.Mood.EntryCount)
	})

	t.Run("serves reports when the cache is down", func(t *testing.T) {
		f := seed(t)
		handler := NewGetDailyReportHandler(f.sources, brokenCache{}, nil)
		handler.now = func() time.Time { return fixedNow }

		report, err := handler.Handle(ctx, GetDailyReportQuery{UserID: f.userID})

		require.NoError(t, err)
		assert.False(t, report.Cached)
		assert.Equal(t, []string{"Write report"}, report.TodayTasks)
	})
}

func TestGetDistractionReportHandler_Handle(t *testing.T) {
	ctx := context.Background()
	f := seed(t)
	handler := NewGetDistractionReportHandler(f.sources.Distractions, f.sources.FocusSessions)
	handler.now = func() time.Time { return fixedNow }

	t.Run("defaults to a week", func(t *testing.T) {
		report, err := handler.Handle(ctx, GetDistractionReportQuery{UserID: f.userID})

		require.NoError(t, err)
		assert.Equal(t, DefaultReportDays, report.Days)
		assert.Equal(t, sharedDomain.DateKey("2024-01-04"), report.Since)
		assert.Equal(t, 2, report.Distractions.Count)
		assert.Equal(t, 8, report.Distractions.TotalMinutes)
		assert.Equal(t, domain.DistractionEmail, report.Distractions.MostFrequentType)
		assert.Equal(t, FocusStats{Sessions: 2, Minutes: 75, CompletionRate: 1}, report.Focus)
	})

	t.Run("longer windows reach older entries", func(t *testing.T) {
		report, err := handler.Handle(ctx, GetDistractionReportQuery{UserID: f.userID, Days: 30})

		require.NoError(t, err)
		assert.Equal(t, 3, report.Distractions.Count)
		assert.Equal(t, 28, report.Distractions.TotalMinutes)
	})
}

type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string) ([]byte, error) { return nil, errCacheDown }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errCacheDown
}
func (brokenCache) Delete(context.Context, ...string) error    { return errCacheDown }
func (brokenCache) DeletePrefix(context.Context, string) error { return errCacheDown }
func (brokenCache) Close() error                               { return nil }
