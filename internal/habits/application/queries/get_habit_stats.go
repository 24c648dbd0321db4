package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/habits/domain"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// DefaultStatsWindowDays is the completion-rate window when none is given.
const DefaultStatsWindowDays = 30

// GetHabitStatsQuery asks for one habit's streaks and completion rate.
type GetHabitStatsQuery struct {
	HabitID    uuid.UUID
	UserID     uuid.UUID
	WindowDays int
}

// HabitStats describes one habit over a trailing window.
type HabitStats struct {
	Habit          HabitDTO `json:"habit" yaml:"habit"`
	WindowDays     int      `json:"window_days" yaml:"window_days"`
	CompletionRate float64  `json:"completion_rate" yaml:"completion_rate"`
}

// GetHabitStatsHandler handles the GetHabitStatsQuery.
type GetHabitStatsHandler struct {
	habitRepo domain.Repository
	now       func() time.Time
}

// NewGetHabitStatsHandler creates a new GetHabitStatsHandler.
func NewGetHabitStatsHandler(habitRepo domain.Repository) *GetHabitStatsHandler {
	return &GetHabitStatsHandler{habitRepo: habitRepo, now: time.Now}
}

// Handle executes the GetHabitStatsQuery.
func (h *GetHabitStatsHandler) Handle(ctx context.Context, query GetHabitStatsQuery) (*HabitStats, error) {
	habit, err := h.habitRepo.FindByID(ctx, query.HabitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, domain.ErrHabitNotFound
	}
	if habit.UserID != query.UserID {
		return nil, domain.ErrNotOwner
	}

	window := query.WindowDays
	if window <= 0 {
		window = DefaultStatsWindowDays
	}

	today := sharedDomain.TodayKey(h.now())
	current := domain.RecomputeStreaks(*habit, today)
	return &HabitStats{
		Habit:          toHabitDTO(current, today),
		WindowDays:     window,
		CompletionRate: domain.CompletionRate(current, window, today),
	}, nil
}
