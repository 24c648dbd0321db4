package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// GetGoalSuggestionsQuery asks for next-step suggestions for one goal.
type GetGoalSuggestionsQuery struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GoalSuggestions holds the suggestions and the tasks that informed them.
type GoalSuggestions struct {
	Goal         GoalDTO  `json:"goal" yaml:"goal"`
	Suggestions  []string `json:"suggestions" yaml:"suggestions"`
	RelatedTasks []string `json:"related_tasks" yaml:"related_tasks"`
}

// GetGoalSuggestionsHandler handles the GetGoalSuggestionsQuery.
type GetGoalSuggestionsHandler struct {
	goalRepo domain.Repository
	taskRepo task.Repository
	now      func() time.Time
}

// NewGetGoalSuggestionsHandler creates a new GetGoalSuggestionsHandler.
func NewGetGoalSuggestionsHandler(goalRepo domain.Repository, taskRepo task.Repository) *GetGoalSuggestionsHandler {
	return &GetGoalSuggestionsHandler{goalRepo: goalRepo, taskRepo: taskRepo, now: time.Now}
}

// Handle executes the GetGoalSuggestionsQuery.
func (h *GetGoalSuggestionsHandler) Handle(ctx context.Context, query GetGoalSuggestionsQuery) (*GoalSuggestions, error) {
	goal, err := h.goalRepo.FindByID(ctx, query.GoalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	if goal.UserID != query.UserID {
		return nil, domain.ErrNotOwner
	}

	tasks, err := h.taskRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	today := sharedDomain.TodayKey(h.now())
	related := domain.FindRelatedTasks(*goal, tasks)
	titles := make([]string, len(related))
	for i, t := range related {
		titles[i] = t.Title
	}

	return &GoalSuggestions{
		Goal:         toGoalDTO(*goal, today),
		Suggestions:  domain.GenerateGoalSuggestions(*goal, tasks, today),
		RelatedTasks: titles,
	}, nil
}
