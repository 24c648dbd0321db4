package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/habits/domain"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// HabitDTO is a data transfer object for habits. Streaks are computed
// against the query's reference day, not read from the stored cache.
type HabitDTO struct {
	ID               uuid.UUID              `json:"id" yaml:"id"`
	Name             string                 `json:"name" yaml:"name"`
	Frequency        string                 `json:"frequency" yaml:"frequency"`
	Color            string                 `json:"color" yaml:"color"`
	CreatedAt        sharedDomain.DateKey   `json:"created_at" yaml:"created_at"`
	CurrentStreak    int                    `json:"current_streak" yaml:"current_streak"`
	LongestStreak    int                    `json:"longest_streak" yaml:"longest_streak"`
	TotalCompletions int                    `json:"total_completions" yaml:"total_completions"`
	IsDueToday       bool                   `json:"due_today" yaml:"due_today"`
	CompletedToday   bool                   `json:"completed_today" yaml:"completed_today"`
	CompletionDates  []sharedDomain.DateKey `json:"completion_dates,omitempty" yaml:"completion_dates,omitempty"`
}

// ListHabitsQuery contains the parameters for listing habits.
type ListHabitsQuery struct {
	UserID uuid.UUID
	// OnlyDueToday drops habits not scheduled for today.
	OnlyDueToday bool
	// IncludeHistory fills HabitDTO.CompletionDates.
	IncludeHistory bool
}

// ListHabitsResult holds the habits plus today's roll-up.
type ListHabitsResult struct {
	Today               sharedDomain.DateKey `json:"today" yaml:"today"`
	Habits              []HabitDTO           `json:"habits" yaml:"habits"`
	CompletedToday      int                  `json:"completed_today" yaml:"completed_today"`
	CompletionRateToday float64              `json:"completion_rate_today" yaml:"completion_rate_today"`
	BestStreaks         domain.Streaks       `json:"best_streaks" yaml:"best_streaks"`
}

// ListHabitsHandler handles the ListHabitsQuery.
type ListHabitsHandler struct {
	habitRepo domain.Repository
	now       func() time.Time
}

// NewListHabitsHandler creates a new ListHabitsHandler.
func NewListHabitsHandler(habitRepo domain.Repository) *ListHabitsHandler {
	return &ListHabitsHandler{habitRepo: habitRepo, now: time.Now}
}

// Handle executes the ListHabitsQuery.
func (h *ListHabitsHandler) Handle(ctx context.Context, query ListHabitsQuery) (*ListHabitsResult, error) {
	habits, err := h.habitRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	today := sharedDomain.TodayKey(h.now())
	current := make([]domain.Habit, 0, len(habits))
	for _, habit := range habits {
		if query.OnlyDueToday && !habit.IsDueOn(today) {
			continue
		}
		current = append(current, domain.RecomputeStreaks(habit, today))
	}

	return &ListHabitsResult{
		Today:               today,
		Habits:              toHabitDTOs(current, today, query.IncludeHistory),
		CompletedToday:      len(domain.CompletedOn(current, today)),
		CompletionRateToday: domain.HabitsCompletionRateOn(current, today),
		BestStreaks:         domain.BestStreaks(current),
	}, nil
}

func toHabitDTOs(habits []domain.Habit, today sharedDomain.DateKey, withHistory bool) []HabitDTO {
	dtos := make([]HabitDTO, len(habits))
	for i, h := range habits {
		dtos[i] = toHabitDTO(h, today)
		if withHistory {
			dtos[i].CompletionDates = h.CompletionDates
		}
	}
	return dtos
}

func toHabitDTO(h domain.Habit, today sharedDomain.DateKey) HabitDTO {
	return HabitDTO{
		ID:               h.ID,
		Name:             h.Name,
		Frequency:        string(h.Frequency),
		Color:            h.Color,
		CreatedAt:        h.CreatedAt,
		CurrentStreak:    h.CurrentStreak,
		LongestStreak:    h.LongestStreak,
		TotalCompletions: h.TotalCompletions(),
		IsDueToday:       h.IsDueOn(today),
		CompletedToday:   h.IsCompletedOn(today),
	}
}
