package domain

import (
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "Goal"

// Routing keys published by the goals context.
const (
	RoutingKeyGoalCreated   = "goals.goal.created"
	RoutingKeyGoalUpdated   = "goals.goal.updated"
	RoutingKeyGoalCompleted = "goals.goal.completed"
)

// GoalCreated is emitted when a goal is created.
type GoalCreated struct {
	sharedDomain.BaseEvent
	GoalID     uuid.UUID            `json:"goal_id"`
	UserID     uuid.UUID            `json:"user_id"`
	Title      string               `json:"title"`
	TargetDate sharedDomain.DateKey `json:"target_date,omitempty"`
}

// NewGoalCreated creates a GoalCreated event.
func NewGoalCreated(g Goal) *GoalCreated {
	return &GoalCreated{
		BaseEvent:  sharedDomain.NewBaseEvent(g.ID, aggregateType, RoutingKeyGoalCreated),
		GoalID:     g.ID,
		UserID:     g.UserID,
		Title:      g.Title,
		TargetDate: g.TargetDate,
	}
}

// GoalUpdated is emitted whenever an existing goal is saved: milestone
// edits, pauses and resumes.
type GoalUpdated struct {
	sharedDomain.BaseEvent
	GoalID   uuid.UUID `json:"goal_id"`
	UserID   uuid.UUID `json:"user_id"`
	Progress int       `json:"progress"`
	Status   Status    `json:"status"`
}

// NewGoalUpdated creates a GoalUpdated event.
func NewGoalUpdated(g Goal) *GoalUpdated {
	return &GoalUpdated{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID, aggregateType, RoutingKeyGoalUpdated),
		GoalID:    g.ID,
		UserID:    g.UserID,
		Progress:  g.Progress,
		Status:    g.Status,
	}
}

// GoalCompleted is emitted when a goal auto-completes.
type GoalCompleted struct {
	sharedDomain.BaseEvent
	GoalID     uuid.UUID `json:"goal_id"`
	UserID     uuid.UUID `json:"user_id"`
	Milestones int       `json:"milestones"`
}

// NewGoalCompleted creates a GoalCompleted event.
func NewGoalCompleted(g Goal) *GoalCompleted {
	return &GoalCompleted{
		BaseEvent:  sharedDomain.NewBaseEvent(g.ID, aggregateType, RoutingKeyGoalCompleted),
		GoalID:     g.ID,
		UserID:     g.UserID,
		Milestones: len(g.Milestones),
	}
}
