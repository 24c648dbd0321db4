package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for goal persistence. Milestones are
// saved and loaded with their goal.
type Repository interface {
	// Save persists a goal (create or update), replacing its milestones.
	Save(ctx context.Context, goal Goal) error

	// FindByID finds a goal by its ID. It returns nil when none exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)

	// FindByUserID finds all goals for a user, oldest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Goal, error)

	// Delete removes a goal and its milestones.
	Delete(ctx context.Context, id uuid.UUID) error
}
