package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DistractionType categorizes an interruption.
type DistractionType string

const (
	DistractionSocialMedia     DistractionType = "social_media"
	DistractionNotification    DistractionType = "notification"
	DistractionEmail           DistractionType = "email"
	DistractionPhoneCall       DistractionType = "phone_call"
	DistractionColleague       DistractionType = "colleague"
	DistractionNoise           DistractionType = "noise"
	DistractionInternalThought DistractionType = "internal_thought"
	DistractionOther           DistractionType = "other"
)

// DistractionTypes lists every known distraction type.
var DistractionTypes = []DistractionType{
	DistractionSocialMedia,
	DistractionNotification,
	DistractionEmail,
	DistractionPhoneCall,
	DistractionColleague,
	DistractionNoise,
	DistractionInternalThought,
	DistractionOther,
}

// IsValid returns true if the type is a known value.
func (t DistractionType) IsValid() bool {
	for _, known := range DistractionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns a human-readable name, e.g. "social media".
func (t DistractionType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Errors
var (
	ErrInvalidDistractionType = errors.New("invalid distraction type")
	ErrNegativeDuration       = errors.New("duration must not be negative")
)

// Distraction is a logged interruption. FocusSessionID optionally points at
// the session it interrupted; the distraction does not own that session.
type Distraction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Type            DistractionType
	Source          string
	DurationMinutes int
	Timestamp       time.Time
	FocusSessionID  *uuid.UUID
}

// NewDistraction creates a new distraction log entry.
func NewDistraction(userID uuid.UUID, distractionType DistractionType, source string, durationMinutes int, at time.Time) (Distraction, error) {
	if !distractionType.IsValid() {
		return Distraction{}, ErrInvalidDistractionType
	}
	if durationMinutes < 0 {
		return Distraction{}, ErrNegativeDuration
	}
	return Distraction{
		ID:              uuid.New(),
		UserID:          userID,
		Type:            distractionType,
		Source:          strings.TrimSpace(source),
		DurationMinutes: durationMinutes,
		Timestamp:       at,
	}, nil
}

// WithFocusSession links the distraction to the session it interrupted.
func (d Distraction) WithFocusSession(sessionID uuid.UUID) Distraction {
	d.FocusSessionID = &sessionID
	return d
}
