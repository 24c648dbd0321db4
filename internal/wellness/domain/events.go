package domain

import (
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

const (
	AggregateType = "MoodEntry"

	RoutingKeyMoodLogged = "wellness.mood.logged"
)

// MoodLogged is emitted when a mood entry is recorded.
type MoodLogged struct {
	sharedDomain.BaseEvent
	Date  sharedDomain.DateKey `json:"date"`
	Score int                  `json:"score"`
}

// NewMoodLogged creates a MoodLogged event.
func NewMoodLogged(e MoodEntry) *MoodLogged {
	return &MoodLogged{
		BaseEvent: sharedDomain.NewBaseEvent(e.ID, AggregateType, RoutingKeyMoodLogged),
		Date:      e.Date,
		Score:     e.Score,
	}
}
