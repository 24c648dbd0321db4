package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// Mood score bounds.
const (
	MinMoodScore = 1
	MaxMoodScore = 5
)

var (
	ErrInvalidMoodScore = errors.New("mood score must be between 1 and 5")
	ErrInvalidMoodDate  = errors.New("invalid mood date")
)

// MoodEntry is a user's self-reported mood for one day.
type MoodEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      sharedDomain.DateKey
	Score     int
	Note      string
	CreatedAt time.Time
}

// NewMoodEntry creates a validated mood entry.
func NewMoodEntry(userID uuid.UUID, date sharedDomain.DateKey, score int, note string, createdAt time.Time) (MoodEntry, error) {
	if score < MinMoodScore || score > MaxMoodScore {
		return MoodEntry{}, ErrInvalidMoodScore
	}
	if !date.Valid() {
		return MoodEntry{}, ErrInvalidMoodDate
	}
	return MoodEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		Score:     score,
		Note:      strings.TrimSpace(note),
		CreatedAt: createdAt,
	}, nil
}
