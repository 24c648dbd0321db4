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

// CreateGoalCommand contains the data needed to create a goal.
type CreateGoalCommand struct {
	UserID     uuid.UUID `validate:"required"`
	Title      string    `validate:"required,max=200"`
	Category   string    `validate:"max=50"`
	TargetDate string    `validate:"omitempty,date_key"`
	// Milestones are optional titles added in order.
	Milestones []string `validate:"dive,required,max=200"`
}

// CreateGoalResult contains the result of creating a goal.
type CreateGoalResult struct {
	GoalID       uuid.UUID
	MilestoneIDs []uuid.UUID
}

// CreateGoalHandler handles the CreateGoalCommand.
type CreateGoalHandler struct {
	goalRepo   domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	now        func() time.Time
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(goalRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateGoalHandler {
	return &CreateGoalHandler{
		goalRepo:   goalRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// Handle executes the CreateGoalCommand.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*CreateGoalResult, error) {
	cmd.Title = sharedApplication.SanitizeText(cmd.Title)
	cmd.Category = sharedApplication.SanitizeText(cmd.Category)
	for i := range cmd.Milestones {
		cmd.Milestones[i] = sharedApplication.SanitizeText(cmd.Milestones[i])
	}
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	target, _ := sharedDomain.NormalizeDate(cmd.TargetDate)

	goal, err := domain.NewGoal(cmd.UserID, cmd.Title, cmd.Category, target, h.now())
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(cmd.Milestones))
	for _, title := range cmd.Milestones {
		m, err := domain.NewMilestone(title, "")
		if err != nil {
			return nil, err
		}
		goal, _ = domain.AddMilestoneToGoal(goal, m)
		ids = append(ids, m.ID)
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.goalRepo.Save(txCtx, goal); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewGoalCreated(goal)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		return outbox.Append(txCtx, h.outboxRepo, events...)
	})
	if err != nil {
		return nil, err
	}

	return &CreateGoalResult{GoalID: goal.ID, MilestoneIDs: ids}, nil
}
