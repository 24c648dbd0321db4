package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

type mockGoalRepo struct {
	mock.Mock
}

func (m *mockGoalRepo) Save(ctx context.Context, goal domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *mockGoalRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *mockGoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var fixedNow = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.Local)

func createTestGoal(t *testing.T, userID uuid.UUID, title string, target sharedDomain.DateKey, milestones int, done int) domain.Goal {
	t.Helper()
	goal, err := domain.NewGoal(userID, title, "", target, fixedNow.AddDate(0, 0, -14))
	require.NoError(t, err)
	for i := 0; i < milestones; i++ {
		m, err := domain.NewMilestone("step", "")
		require.NoError(t, err)
		goal, _ = domain.AddMilestoneToGoal(goal, m)
	}
	for i := 0; i < done; i++ {
		goal, _ = domain.ToggleMilestoneCompletion(goal, goal.Milestones[i].ID, "2024-01-05")
	}
	return goal
}

func TestListGoalsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	undated := createTestGoal(t, userID, "Read more", "", 4, 1)
	late := createTestGoal(t, userID, "Write a book", "2024-06-01", 3, 3)
	soon := createTestGoal(t, userID, "Ship v2", "2024-01-20", 2, 1)
	paused, err := createTestGoal(t, userID, "Learn piano", "2024-03-01", 2, 0).Pause()
	require.NoError(t, err)

	newHandler := func() *ListGoalsHandler {
		repo := new(mockGoalRepo)
		repo.On("FindByUserID", ctx, userID).Return([]domain.Goal{undated, late, soon, paused}, nil)
		handler := NewListGoalsHandler(repo)
		handler.now = func() time.Time { return fixedNow }
		return handler
	}

	t.Run("lists every goal by target date", func(t *testing.T) {
		result, err := newHandler().Handle(ctx, ListGoalsQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, result.Goals, 4)
		assert.Equal(t, "Ship v2", result.Goals[0].Title)
		assert.Equal(t, "Learn piano", result.Goals[1].Title)
		assert.Equal(t, "Write a book", result.Goals[2].Title)
		assert.Equal(t, "Read more", result.Goals[3].Title)

		require.NotNil(t, result.Goals[0].DaysRemaining)
		assert.Equal(t, 10, *result.Goals[0].DaysRemaining)
		assert.Nil(t, result.Goals[3].DaysRemaining)
		assert.Len(t, result.Goals[3].Milestones, 4)
		assert.InDelta(t, (25.0+100+50+0)/4, result.AverageProgress, 1e-9)
	})

	t.Run("filters by status", func(t *testing.T) {
		result, err := newHandler().Handle(ctx, ListGoalsQuery{UserID: userID, Status: "completed"})

		require.NoError(t, err)
		require.Len(t, result.Goals, 1)
		assert.Equal(t, "Write a book", result.Goals[0].Title)
		assert.Equal(t, "completed", result.Goals[0].Status)
		assert.InDelta(t, 100.0, result.AverageProgress, 1e-9)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		_, err := NewListGoalsHandler(new(mockGoalRepo)).Handle(ctx, ListGoalsQuery{UserID: userID, Status: "archived"})

		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	})
}

func TestGetGoalSuggestionsHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("combines band, related task and pacing advice", func(t *testing.T) {
		goal := createTestGoal(t, userID, "Learn programming", "2024-01-12", 3, 0)
		practice, err := task.NewTask(userID, "Practice programming katas", value_objects.PriorityMedium, 30, fixedNow)
		require.NoError(t, err)
		milk, err := task.NewTask(userID, "Buy milk", value_objects.PriorityLow, 5, fixedNow)
		require.NoError(t, err)

		goalRepo := new(mockGoalRepo)
		taskRepo := new(mockTaskRepo)
		goalRepo.On("FindByID", ctx, goal.ID).Return(&goal, nil)
		taskRepo.On("FindByUserID", ctx, userID).Return([]task.Task{milk, practice}, nil)
		handler := NewGetGoalSuggestionsHandler(goalRepo, taskRepo)
		handler.now = func() time.Time { return fixedNow }

		result, err := handler.Handle(ctx, GetGoalSuggestionsQuery{GoalID: goal.ID, UserID: userID})

		require.NoError(t, err)
		require.Len(t, result.Suggestions, domain.MaxGoalSuggestions)
		assert.Contains(t, result.Suggestions[2], "Practice programming katas")
		assert.Equal(t, []string{"Practice programming katas"}, result.RelatedTasks)
		assert.Equal(t, goal.ID, result.Goal.ID)
		goalRepo.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
	})

	t.Run("unknown goal", func(t *testing.T) {
		goalRepo := new(mockGoalRepo)
		goalID := uuid.New()
		goalRepo.On("FindByID", ctx, goalID).Return(nil, nil)

		_, err := NewGetGoalSuggestionsHandler(goalRepo, new(mockTaskRepo)).Handle(ctx, GetGoalSuggestionsQuery{GoalID: goalID, UserID: userID})

		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})

	t.Run("someone else's goal", func(t *testing.T) {
		goal := createTestGoal(t, uuid.New(), "Secret plan", "", 0, 0)
		goalRepo := new(mockGoalRepo)
		goalRepo.On("FindByID", ctx, goal.ID).Return(&goal, nil)

		_, err := NewGetGoalSuggestionsHandler(goalRepo, new(mockTaskRepo)).Handle(ctx, GetGoalSuggestionsQuery{GoalID: goal.ID, UserID: userID})

		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})
}
