package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// Errors
var (
	ErrInvalidSessionDuration = errors.New("focus session duration must be positive")
)

// FocusSession is a completed or abandoned timed work block.
type FocusSession struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	DurationMinutes int
	Timestamp       time.Time
	Completed       bool
	TaskID          *uuid.UUID
}

// NewFocusSession creates a new focus session record.
func NewFocusSession(userID uuid.UUID, durationMinutes int, at time.Time, completed bool) (FocusSession, error) {
	if durationMinutes <= 0 {
		return FocusSession{}, ErrInvalidSessionDuration
	}
	return FocusSession{
		ID:              uuid.New(),
		UserID:          userID,
		DurationMinutes: durationMinutes,
		Timestamp:       at,
		Completed:       completed,
	}, nil
}

// WithTask sets the task the session was spent on.
func (s FocusSession) WithTask(taskID uuid.UUID) FocusSession {
	s.TaskID = &taskID
	return s
}

// Duration returns the duration of the session.
func (s FocusSession) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// TotalFocusMinutes sums the durations of completed sessions.
func TotalFocusMinutes(sessions []FocusSession) int {
	total := 0
	for _, s := range sessions {
		if s.Completed {
			total += s.DurationMinutes
		}
	}
	return total
}

// FocusCompletionRate returns completed/total sessions, or 0 for none.
func FocusCompletionRate(sessions []FocusSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	done := 0
	for _, s := range sessions {
		if s.Completed {
			done++
		}
	}
	return float64(done) / float64(len(sessions))
}

// SessionsOn returns the sessions started on the given local day.
func SessionsOn(sessions []FocusSession, day sharedDomain.DateKey) []FocusSession {
	result := make([]FocusSession, 0)
	for _, s := range sessions {
		if sharedDomain.DateKeyOf(s.Timestamp) == day {
			result = append(result, s)
		}
	}
	return result
}
