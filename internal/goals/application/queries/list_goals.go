package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// MilestoneDTO is a data transfer object for milestones.
type MilestoneDTO struct {
	ID            uuid.UUID            `json:"id" yaml:"id"`
	Title         string               `json:"title" yaml:"title"`
	Completed     bool                 `json:"completed" yaml:"completed"`
	DueDate       sharedDomain.DateKey `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CompletedDate sharedDomain.DateKey `json:"completed_date,omitempty" yaml:"completed_date,omitempty"`
	Order         int                  `json:"order" yaml:"order"`
}

// GoalDTO is a data transfer object for goals.
type GoalDTO struct {
	ID            uuid.UUID            `json:"id" yaml:"id"`
	Title         string               `json:"title" yaml:"title"`
	Category      string               `json:"category,omitempty" yaml:"category,omitempty"`
	TargetDate    sharedDomain.DateKey `json:"target_date,omitempty" yaml:"target_date,omitempty"`
	Status        string               `json:"status" yaml:"status"`
	Progress      int                  `json:"progress" yaml:"progress"`
	DaysRemaining *int                 `json:"days_remaining,omitempty" yaml:"days_remaining,omitempty"`
	Milestones    []MilestoneDTO       `json:"milestones" yaml:"milestones"`
	CreatedAt     time.Time            `json:"created_at" yaml:"created_at"`
}

// ListGoalsQuery contains the parameters for listing goals.
type ListGoalsQuery struct {
	UserID uuid.UUID
	// Status filters by lifecycle status; empty lists every goal.
	Status string
}

// ListGoalsResult holds the goals, soonest target date first.
type ListGoalsResult struct {
	Goals           []GoalDTO `json:"goals" yaml:"goals"`
	AverageProgress float64   `json:"average_progress" yaml:"average_progress"`
}

// ListGoalsHandler handles the ListGoalsQuery.
type ListGoalsHandler struct {
	goalRepo domain.Repository
	now      func() time.Time
}

// NewListGoalsHandler creates a new ListGoalsHandler.
func NewListGoalsHandler(goalRepo domain.Repository) *ListGoalsHandler {
	return &ListGoalsHandler{goalRepo: goalRepo, now: time.Now}
}

// Handle executes the ListGoalsQuery.
func (h *ListGoalsHandler) Handle(ctx context.Context, query ListGoalsQuery) (*ListGoalsResult, error) {
	var status domain.Status
	if query.Status != "" {
		parsed, err := domain.ParseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	goals, err := h.goalRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if status != "" {
		goals = domain.FilterByStatus(goals, status)
	}
	goals = domain.SortByTargetDate(goals)

	today := sharedDomain.TodayKey(h.now())
	dtos := make([]GoalDTO, len(goals))
	for i, g := range goals {
		dtos[i] = toGoalDTO(g, today)
	}

	return &ListGoalsResult{
		Goals:           dtos,
		AverageProgress: domain.AverageProgress(goals),
	}, nil
}

func toGoalDTO(g domain.Goal, today sharedDomain.DateKey) GoalDTO {
	dto := GoalDTO{
		ID:         g.ID,
		Title:      g.Title,
		Category:   g.Category,
		TargetDate: g.TargetDate,
		Status:     g.Status.String(),
		Progress:   g.Progress,
		Milestones: make([]MilestoneDTO, len(g.Milestones)),
		CreatedAt:  g.CreatedAt,
	}
	if days, ok := g.DaysRemaining(today); ok {
		dto.DaysRemaining = &days
	}
	for i, m := range g.Milestones {
		dto.Milestones[i] = MilestoneDTO{
			ID:            m.ID,
			Title:         m.Title,
			Completed:     m.Completed,
			DueDate:       m.DueDate,
			CompletedDate: m.CompletedDate,
			Order:         m.Order,
		}
	}
	return dto
}
