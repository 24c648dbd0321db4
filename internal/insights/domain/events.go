package domain

import (
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

// Routing keys published by the insights context.
const (
	RoutingKeyDistractionLogged  = "insights.distraction.logged"
	RoutingKeyFocusSessionLogged = "insights.focus_session.logged"
)

// DistractionLogged is emitted when a distraction is recorded.
type DistractionLogged struct {
	sharedDomain.BaseEvent
	DistractionType DistractionType `json:"distraction_type"`
	Source          string          `json:"source,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
}

// NewDistractionLogged creates a DistractionLogged event.
func NewDistractionLogged(d Distraction) *DistractionLogged {
	return &DistractionLogged{
		BaseEvent:       sharedDomain.NewBaseEvent(d.ID, "Distraction", RoutingKeyDistractionLogged),
		DistractionType: d.Type,
		Source:          d.Source,
		DurationMinutes: d.DurationMinutes,
	}
}

// FocusSessionLogged is emitted when a focus session is recorded.
type FocusSessionLogged struct {
	sharedDomain.BaseEvent
	DurationMinutes int        `json:"duration_minutes"`
	Completed       bool       `json:"completed"`
	TaskID          *uuid.UUID `json:"task_id,omitempty"`
}

// NewFocusSessionLogged creates a FocusSessionLogged event.
func NewFocusSessionLogged(s FocusSession) *FocusSessionLogged {
	return &FocusSessionLogged{
		BaseEvent:       sharedDomain.NewBaseEvent(s.ID, "FocusSession", RoutingKeyFocusSessionLogged),
		DurationMinutes: s.DurationMinutes,
		Completed:       s.Completed,
		TaskID:          s.TaskID,
	}
}
