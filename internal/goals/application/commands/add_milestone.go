package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// AddMilestoneCommand appends a milestone to a goal.
type AddMilestoneCommand struct {
	GoalID  uuid.UUID `validate:"required"`
	UserID  uuid.UUID `validate:"required"`
	Title   string    `validate:"required,max=200"`
	DueDate string    `validate:"omitempty,date_key"`
}

// AddMilestoneResult contains the new milestone and the goal's progress.
type AddMilestoneResult struct {
	MilestoneID uuid.UUID
	Order       int
	Progress    int
}

// AddMilestoneHandler handles the AddMilestoneCommand.
type AddMilestoneHandler struct {
	store goalStore
	uow   sharedApplication.UnitOfWork
}

// NewAddMilestoneHandler creates a new AddMilestoneHandler.
func NewAddMilestoneHandler(goalRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *AddMilestoneHandler {
	return &AddMilestoneHandler{
		store: goalStore{goalRepo: goalRepo, outboxRepo: outboxRepo},
		uow:   uow,
	}
}

// Handle executes the AddMilestoneCommand.
func (h *AddMilestoneHandler) Handle(ctx context.Context, cmd AddMilestoneCommand) (*AddMilestoneResult, error) {
	cmd.Title = sharedApplication.SanitizeText(cmd.Title)
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	due, _ := sharedDomain.NormalizeDate(cmd.DueDate)
	milestone, err := domain.NewMilestone(cmd.Title, due)
	if err != nil {
		return nil, err
	}

	var result *AddMilestoneResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.store.loadOwned(txCtx, cmd.GoalID, cmd.UserID)
		if err != nil {
			return err
		}

		updated, _ := domain.AddMilestoneToGoal(goal, milestone)
		if err := h.store.save(txCtx, cmd.UserID, goal, updated); err != nil {
			return err
		}

		added, _ := updated.Milestone(milestone.ID)
		result = &AddMilestoneResult{
			MilestoneID: added.ID,
			Order:       added.Order,
			Progress:    updated.Progress,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
