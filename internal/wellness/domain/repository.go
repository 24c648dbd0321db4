package domain

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// MoodRepository defines persistence operations for mood entries.
// A user has at most one entry per date; saving another replaces it.
type MoodRepository interface {
	Save(ctx context.Context, entry MoodEntry) error
	FindByDate(ctx context.Context, userID uuid.UUID, date sharedDomain.DateKey) (*MoodEntry, error)
	FindRange(ctx context.Context, userID uuid.UUID, from, to sharedDomain.DateKey) ([]MoodEntry, error)
}
