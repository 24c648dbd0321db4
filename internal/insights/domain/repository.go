package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DistractionRepository defines operations for distraction logs.
type DistractionRepository interface {
	// Save creates or replaces a distraction.
	Save(ctx context.Context, distraction Distraction) error

	// FindSince retrieves a user's distractions at or after since, oldest first.
	FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Distraction, error)
}

// FocusSessionRepository defines operations for focus sessions.
type FocusSessionRepository interface {
	// Save creates or replaces a session.
	Save(ctx context.Context, session FocusSession) error

	// FindSince retrieves a user's sessions at or after since, oldest first.
	FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]FocusSession, error)
}
