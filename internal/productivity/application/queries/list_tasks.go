package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
)

// Views select which tasks ListTasks returns.
const (
	ViewAll     = "all"
	ViewToday   = "today"
	ViewWeek    = "week"
	ViewOverdue = "overdue"
)

// Sort orders for ListTasks.
const (
	SortPriority = "priority"
	SortDue      = "due"
)

var (
	ErrUnknownView = errors.New("unknown task view")
	ErrUnknownSort = errors.New("unknown task sort")
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID           uuid.UUID  `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Priority     string     `json:"priority" yaml:"priority"`
	TimeEstimate int        `json:"time_estimate" yaml:"time_estimate"`
	Completed    bool       `json:"completed" yaml:"completed"`
	Category     string     `json:"category,omitempty" yaml:"category,omitempty"`
	DueDate      string     `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	FocusMode    bool       `json:"focus_mode" yaml:"focus_mode"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// TaskGroup is one category bucket of a grouped listing.
type TaskGroup struct {
	Category string    `json:"category" yaml:"category"`
	Tasks    []TaskDTO `json:"tasks" yaml:"tasks"`
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	UserID      uuid.UUID
	View        string // all (default), today, week, overdue
	Category    string
	Sort        string // priority, due; empty keeps creation order
	PendingOnly bool
	Group       bool
}

// ListTasksResult holds the selected tasks, grouped when requested.
type ListTasksResult struct {
	Tasks  []TaskDTO   `json:"tasks" yaml:"tasks"`
	Groups []TaskGroup `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	now      func() time.Time
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, now: time.Now}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) (*ListTasksResult, error) {
	tasks, err := h.taskRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	now := h.now()
	switch query.View {
	case "", ViewAll:
	case ViewToday:
		tasks = task.FilterToday(tasks, now)
	case ViewWeek:
		tasks = task.FilterThisWeek(tasks, now)
	case ViewOverdue:
		tasks = task.FilterOverdue(tasks, now)
	default:
		return nil, ErrUnknownView
	}

	if query.Category != "" {
		tasks = task.FilterByCategory(tasks, query.Category)
	}
	if query.PendingOnly {
		tasks = task.FilterPending(tasks)
	}

	switch query.Sort {
	case "":
	case SortPriority:
		tasks = task.SortByPriority(tasks)
	case SortDue:
		tasks = task.SortByDueDate(tasks)
	default:
		return nil, ErrUnknownSort
	}

	result := &ListTasksResult{Tasks: toTaskDTOs(tasks)}
	if query.Group {
		for _, g := range task.GroupByCategory(tasks) {
			result.Groups = append(result.Groups, TaskGroup{Category: g.Category, Tasks: toTaskDTOs(g.Tasks)})
		}
	}
	return result, nil
}

func toTaskDTOs(tasks []task.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = TaskDTO{
			ID:           t.ID,
			Title:        t.Title,
			Priority:     t.Priority.String(),
			TimeEstimate: t.TimeEstimate,
			Completed:    t.Completed,
			Category:     t.Category,
			DueDate:      t.DueDate,
			FocusMode:    t.FocusMode,
			CreatedAt:    t.CreatedAt,
			CompletedAt:  t.CompletedAt,
		}
	}
	return dtos
}
