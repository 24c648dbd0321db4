package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// SetGoalStatusCommand pauses or resumes a goal.
type SetGoalStatusCommand struct {
	GoalID uuid.UUID `validate:"required"`
	UserID uuid.UUID `validate:"required"`
	// Status is the target status: paused or active. Goals only reach
	// completed through their milestones.
	Status string `validate:"required,goal_status"`
}

// SetGoalStatusHandler handles the SetGoalStatusCommand.
type SetGoalStatusHandler struct {
	store goalStore
	uow   sharedApplication.UnitOfWork
}

// NewSetGoalStatusHandler creates a new SetGoalStatusHandler.
func NewSetGoalStatusHandler(goalRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *SetGoalStatusHandler {
	return &SetGoalStatusHandler{
		store: goalStore{goalRepo: goalRepo, outboxRepo: outboxRepo},
		uow:   uow,
	}
}

// Handle executes the SetGoalStatusCommand.
func (h *SetGoalStatusHandler) Handle(ctx context.Context, cmd SetGoalStatusCommand) (*GoalProgressResult, error) {
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	var result *GoalProgressResult
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.store.loadOwned(txCtx, cmd.GoalID, cmd.UserID)
		if err != nil {
			return err
		}

		var updated domain.Goal
		switch domain.Status(cmd.Status) {
		case domain.StatusPaused:
			updated, err = goal.Pause()
		case domain.StatusActive:
			updated, err = goal.Resume()
		default:
			err = domain.ErrInvalidStatusTransition
		}
		if err != nil {
			return err
		}

		if err := h.store.save(txCtx, cmd.UserID, goal, updated); err != nil {
			return err
		}

		result = progressResult(goal, updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
