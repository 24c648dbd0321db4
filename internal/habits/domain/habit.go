package domain

import (
	"errors"
	"slices"
	"strings"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrHabitEmptyName   = errors.New("habit name cannot be empty")
	ErrHabitInvalidFreq = errors.New("invalid habit frequency")
	ErrHabitInvalidDate = errors.New("invalid habit creation date")
	ErrHabitNotFound    = errors.New("habit not found")
	ErrNotOwner         = errors.New("user does not own this habit")
)

// DefaultColor is used when a habit is created without a color tag.
const DefaultColor = "blue"

// Frequency represents how often a habit should be performed.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// IsValid checks if the frequency is valid.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

// Habit is a snapshot of a recurring activity and its completion history.
//
// CompletionDates has set semantics and is kept sorted ascending.
// CurrentStreak and LongestStreak are cached values; they are only ever
// written by RecomputeStreaks and ToggleCompletion.
type Habit struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Frequency       Frequency
	Color           string
	CreatedAt       sharedDomain.DateKey
	CompletionDates []sharedDomain.DateKey
	CurrentStreak   int
	LongestStreak   int
}

// NewHabit creates a new habit with an empty completion history.
func NewHabit(userID uuid.UUID, name string, frequency Frequency, color string, createdAt sharedDomain.DateKey) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, ErrHabitEmptyName
	}
	if !frequency.IsValid() {
		return Habit{}, ErrHabitInvalidFreq
	}
	if !createdAt.Valid() {
		return Habit{}, ErrHabitInvalidDate
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultColor
	}

	return Habit{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Frequency:       frequency,
		Color:           color,
		CreatedAt:       createdAt,
		CompletionDates: []sharedDomain.DateKey{},
	}, nil
}

// IsDueOn checks if the habit is scheduled for a given day.
func (h Habit) IsDueOn(day sharedDomain.DateKey) bool {
	if !day.Valid() {
		return false
	}
	if h.CreatedAt.Valid() && day.Before(h.CreatedAt) {
		return false
	}

	switch h.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		// Due on the same weekday as creation
		return day.Weekday() == h.CreatedAt.Weekday()
	default:
		return false
	}
}

// IsCompletedOn checks if the habit was completed on a given day.
func (h Habit) IsCompletedOn(day sharedDomain.DateKey) bool {
	return slices.Contains(h.CompletionDates, day)
}

// TotalCompletions returns the number of distinct completed days.
func (h Habit) TotalCompletions() int {
	return len(h.CompletionDates)
}

// ToggleCompletion returns a copy of the habit with day added to or removed
// from its completion set and both streaks recomputed against reference.
func (h Habit) ToggleCompletion(day, reference sharedDomain.DateKey) Habit {
	result := ToggleCompletionForDate(h.CompletionDates, day, reference)
	h.CompletionDates = result.Dates
	h.CurrentStreak = result.Current
	h.LongestStreak = result.Longest
	return h
}

// RecomputeStreaks returns a copy of the habit with normalized completion
// dates and streaks recomputed against reference.
func RecomputeStreaks(h Habit, reference sharedDomain.DateKey) Habit {
	h.CompletionDates = distinctSorted(h.CompletionDates)
	streaks := ComputeStreaks(h.CompletionDates, reference)
	h.CurrentStreak = streaks.Current
	h.LongestStreak = streaks.Longest
	return h
}
