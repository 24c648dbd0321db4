package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
)

// TaskStats summarizes a user's tasks.
type TaskStats struct {
	Total            int     `json:"total" yaml:"total"`
	Completed        int     `json:"completed" yaml:"completed"`
	Pending          int     `json:"pending" yaml:"pending"`
	Overdue          int     `json:"overdue" yaml:"overdue"`
	DueToday         int     `json:"due_today" yaml:"due_today"`
	FocusMode        int     `json:"focus_mode" yaml:"focus_mode"`
	CompletionRate   float64 `json:"completion_rate" yaml:"completion_rate"`
	EstimatedMinutes int     `json:"estimated_minutes" yaml:"estimated_minutes"`
	RemainingMinutes int     `json:"remaining_minutes" yaml:"remaining_minutes"`
}

// GetTaskStatsQuery asks for a user's task summary.
type GetTaskStatsQuery struct {
	UserID uuid.UUID
}

// GetTaskStatsHandler handles the GetTaskStatsQuery.
type GetTaskStatsHandler struct {
	taskRepo task.Repository
	now      func() time.Time
}

// NewGetTaskStatsHandler creates a new GetTaskStatsHandler.
func NewGetTaskStatsHandler(taskRepo task.Repository) *GetTaskStatsHandler {
	return &GetTaskStatsHandler{taskRepo: taskRepo, now: time.Now}
}

// Handle executes the GetTaskStatsQuery.
func (h *GetTaskStatsHandler) Handle(ctx context.Context, query GetTaskStatsQuery) (*TaskStats, error) {
	tasks, err := h.taskRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	return ComputeTaskStats(tasks, h.now()), nil
}

// ComputeTaskStats summarizes tasks as of now.
func ComputeTaskStats(tasks []task.Task, now time.Time) *TaskStats {
	completed := len(task.FilterCompleted(tasks))
	return &TaskStats{
		Total:            len(tasks),
		Completed:        completed,
		Pending:          len(tasks) - completed,
		Overdue:          len(task.FilterOverdue(tasks, now)),
		DueToday:         len(task.FilterToday(tasks, now)),
		FocusMode:        len(task.FilterFocusMode(tasks)),
		CompletionRate:   task.CompletionRate(tasks),
		EstimatedMinutes: task.TotalEstimatedMinutes(tasks),
		RemainingMinutes: task.RemainingEstimatedMinutes(tasks),
	}
}
