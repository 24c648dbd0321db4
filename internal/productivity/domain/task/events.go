package task

import (
	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated   = "productivity.task.created"
	RoutingKeyCompleted = "productivity.task.completed"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Category string `json:"category,omitempty"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t Task) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(t.ID, AggregateType, RoutingKeyCreated),
		Title:     t.Title,
		Priority:  t.Priority.String(),
		Category:  t.Category,
	}
}

// TaskCompleted is emitted when a task is completed.
type TaskCompleted struct {
	domain.BaseEvent
	TimeEstimate int `json:"time_estimate"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(t Task) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent:    domain.NewBaseEvent(t.ID, AggregateType, RoutingKeyCompleted),
		TimeEstimate: t.TimeEstimate,
	}
}
