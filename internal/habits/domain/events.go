package domain

import (
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "Habit"

// Routing keys published by the habits context.
const (
	RoutingKeyHabitCreated           = "habits.habit.created"
	RoutingKeyHabitCompletionToggled = "habits.habit.completion_toggled"
)

// HabitCreated is emitted when a habit is created.
type HabitCreated struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Frequency string    `json:"frequency"`
}

// NewHabitCreated creates a HabitCreated event.
func NewHabitCreated(h Habit) *HabitCreated {
	return &HabitCreated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID, aggregateType, RoutingKeyHabitCreated),
		HabitID:   h.ID,
		UserID:    h.UserID,
		Name:      h.Name,
		Frequency: string(h.Frequency),
	}
}

// HabitCompletionToggled is emitted when a day is added to or removed from
// a habit's completion set.
type HabitCompletionToggled struct {
	sharedDomain.BaseEvent
	HabitID       uuid.UUID            `json:"habit_id"`
	UserID        uuid.UUID            `json:"user_id"`
	Date          sharedDomain.DateKey `json:"date"`
	Completed     bool                 `json:"completed"`
	CurrentStreak int                  `json:"current_streak"`
	LongestStreak int                  `json:"longest_streak"`
}

// NewHabitCompletionToggled creates a HabitCompletionToggled event from the
// habit state after the toggle.
func NewHabitCompletionToggled(h Habit, day sharedDomain.DateKey) *HabitCompletionToggled {
	return &HabitCompletionToggled{
		BaseEvent:     sharedDomain.NewBaseEvent(h.ID, aggregateType, RoutingKeyHabitCompletionToggled),
		HabitID:       h.ID,
		UserID:        h.UserID,
		Date:          day,
		Completed:     h.IsCompletedOn(day),
		CurrentStreak: h.CurrentStreak,
		LongestStreak: h.LongestStreak,
	}
}
