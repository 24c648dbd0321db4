package task

import (
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrInvalidEstimate     = errors.New("time estimate must not be negative")
	ErrEstimateTooLong     = errors.New("time estimate exceeds maximum allowed")
	ErrTaskNotFound        = errors.New("task not found")
	ErrNotOwner            = errors.New("user does not own this task")
)

// MaxEstimateMinutes is the maximum allowed time estimate (8 hours).
const MaxEstimateMinutes = 8 * 60

// Task is a snapshot of a unit of work to be done.
//
// DueDate is an optional date-only string. It is normalized on read, so
// an unparsable value is treated as "no due date".
type Task struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Priority     value_objects.Priority
	TimeEstimate int
	Completed    bool
	CreatedAt    time.Time
	Category     string
	DueDate      string
	FocusMode    bool
	CompletedAt  *time.Time
}

// NewTask creates a new pending task.
func NewTask(userID uuid.UUID, title string, priority value_objects.Priority, estimateMinutes int, createdAt time.Time) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	if !priority.IsValid() {
		return Task{}, value_objects.ErrInvalidPriority
	}
	if estimateMinutes < 0 {
		return Task{}, ErrInvalidEstimate
	}
	if estimateMinutes > MaxEstimateMinutes {
		return Task{}, ErrEstimateTooLong
	}

	return Task{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        title,
		Priority:     priority,
		TimeEstimate: estimateMinutes,
		CreatedAt:    createdAt,
	}, nil
}

// DueKey returns the normalized due date, if any.
func (t Task) DueKey() (domain.DateKey, bool) {
	if t.DueDate == "" {
		return "", false
	}
	return domain.NormalizeDate(t.DueDate)
}

// CreatedKey returns the local calendar date the task was created on.
func (t Task) CreatedKey() domain.DateKey {
	if t.CreatedAt.IsZero() {
		return ""
	}
	return domain.DateKeyOf(t.CreatedAt)
}

// HasCategory reports whether the task carries a category.
func (t Task) HasCategory() bool {
	return strings.TrimSpace(t.Category) != ""
}

// Complete returns a completed copy of the task.
func (t Task) Complete(at time.Time) (Task, error) {
	if t.Completed {
		return t, ErrTaskAlreadyComplete
	}
	at = at.UTC()
	t.Completed = true
	t.CompletedAt = &at
	return t, nil
}
