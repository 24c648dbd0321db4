package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// ToggleMilestoneCommand flips the completion of one milestone.
type ToggleMilestoneCommand struct {
	GoalID      uuid.UUID `validate:"required"`
	MilestoneID uuid.UUID `validate:"required"`
	UserID      uuid.UUID `validate:"required"`
}

// GoalProgressResult describes a goal after a milestone change.
type GoalProgressResult struct {
	GoalID   uuid.UUID
	Progress int
	Status   domain.Status
	// Completed is true when this change completed the goal.
	Completed bool
}

// ToggleMilestoneHandler handles the ToggleMilestoneCommand.
type ToggleMilestoneHandler struct {
	store goalStore
	uow   sharedApplication.UnitOfWork
	now   func() time.Time
}

// NewToggleMilestoneHandler creates a new ToggleMilestoneHandler.
func NewToggleMilestoneHandler(goalRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ToggleMilestoneHandler {
	return &ToggleMilestoneHandler{
		store: goalStore{goalRepo: goalRepo, outboxRepo: outboxRepo},
		uow:   uow,
		now:   time.Now,
	}
}

// Handle executes the ToggleMilestoneCommand.
func (h *ToggleMilestoneHandler) Handle(ctx context.Context, cmd ToggleMilestoneCommand) (*GoalProgressResult, error) {
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	today := sharedDomain.TodayKey(h.now())

	var result *GoalProgressResult
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.store.loadOwned(txCtx, cmd.GoalID, cmd.UserID)
		if err != nil {
			return err
		}

		updated, ok := domain.ToggleMilestoneCompletion(goal, cmd.MilestoneID, today)
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

func progressResult(before, after domain.Goal) *GoalProgressResult {
	return &GoalProgressResult{
		GoalID:    after.ID,
		Progress:  after.Progress,
		Status:    after.Status,
		Completed: before.Status != domain.StatusCompleted && after.Status == domain.StatusCompleted,
	}
}
