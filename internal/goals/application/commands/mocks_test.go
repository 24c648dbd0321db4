package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
)

// mockGoalRepo is a mock implementation of domain.Repository.
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

var fixedNow = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.Local)

func existingGoal(t *testing.T, userID uuid.UUID, milestones ...string) *domain.Goal {
	t.Helper()
	goal, err := domain.NewGoal(userID, "Learn Go", "growth", "2024-03-01", fixedNow.AddDate(0, 0, -7))
	require.NoError(t, err)
	for _, title := range milestones {
		m, err := domain.NewMilestone(title, "")
		require.NoError(t, err)
		var ok bool
		goal, ok = domain.AddMilestoneToGoal(goal, m)
		require.True(t, ok)
	}
	return &goal
}
