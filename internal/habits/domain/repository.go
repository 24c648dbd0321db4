package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for habit persistence.
type Repository interface {
	// Save persists a habit (create or update), replacing its completion set.
	Save(ctx context.Context, habit Habit) error

	// FindByID finds a habit by its ID. It returns nil when none exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)

	// FindByUserID finds all habits for a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Habit, error)

	// Delete removes a habit.
	Delete(ctx context.Context, id uuid.UUID) error
}
