package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID          uuid.UUID `validate:"required"`
	Title           string    `validate:"required,max=200"`
	Priority        string    `validate:"omitempty,priority"`
	EstimateMinutes int       `validate:"min=0,max=480"`
	Category        string    `validate:"max=50"`
	DueDate         string    `validate:"omitempty,date_key"`
	FocusMode       bool
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	now        func() time.Time
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	cmd.Title = sharedApplication.SanitizeText(cmd.Title)
	cmd.Category = sharedApplication.SanitizeText(cmd.Category)
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	priority := value_objects.PriorityMedium
	if cmd.Priority != "" {
		p, err := value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	t, err := task.NewTask(cmd.UserID, cmd.Title, priority, cmd.EstimateMinutes, h.now())
	if err != nil {
		return nil, err
	}
	t.Category = cmd.Category
	t.DueDate = cmd.DueDate
	t.FocusMode = cmd.FocusMode

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{task.NewTaskCreated(t)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		return outbox.Append(txCtx, h.outboxRepo, events...)
	})
	if err != nil {
		return nil, err
	}

	return &CreateTaskResult{TaskID: t.ID}, nil
}
