package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// RemoveMilestoneCommand drops one milestone from a goal.
type RemoveMilestoneCommand struct {
	GoalID      uuid.UUID `validate:"required"`
	MilestoneID uuid.UUID `validate:"required"`
	UserID      uuid.UUID `validate:"required"`
}

// RemoveMilestoneHandler handles the RemoveMilestoneCommand.
type RemoveMilestoneHandler struct {
	store goalStore
	uow   sharedApplication.UnitOfWork
}

// NewRemoveMilestoneHandler creates a new RemoveMilestoneHandler.
func NewRemoveMilestoneHandler(goalRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *RemoveMilestoneHandler {
	return &RemoveMilestoneHandler{
		store: goalStore{goalRepo: goalRepo, outboxRepo: outboxRepo},
		uow:   uow,
	}
}

// Handle executes the RemoveMilestoneCommand. Removing the last open
// milestone of an active goal completes it.
func (h *RemoveMilestoneHandler) Handle(ctx context.Context, cmd RemoveMilestoneCommand) (*GoalProgressResult, error) {
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	var result *GoalProgressResult
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.store.loadOwned(txCtx, cmd.GoalID, cmd.UserID)
		if err != nil {
			return err
		}

		updated, ok := domain.RemoveMilestone(goal, cmd.MilestoneID)
		if !ok {
			return domain.ErrMilestoneNotFound
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
