package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/habits/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// CreateHabitCommand contains the data needed to create a habit.
type CreateHabitCommand struct {
	UserID    uuid.UUID `validate:"required"`
	Name      string    `validate:"required,max=100"`
	Frequency string    `validate:"omitempty,habit_frequency"`
	Color     string    `validate:"max=32"`
	// Date is the creation day; empty means today.
	Date string `validate:"omitempty,date_key"`
}

// CreateHabitResult contains the result of creating a habit.
type CreateHabitResult struct {
	HabitID uuid.UUID
}

// CreateHabitHandler handles the CreateHabitCommand.
type CreateHabitHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	now        func() time.Time
}

// NewCreateHabitHandler creates a new CreateHabitHandler.
func NewCreateHabitHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateHabitHandler {
	return &CreateHabitHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// Handle executes the CreateHabitCommand.
func (h *CreateHabitHandler) Handle(ctx context.Context, cmd CreateHabitCommand) (*CreateHabitResult, error) {
	cmd.Name = sharedApplication.SanitizeText(cmd.Name)
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	freq := domain.Frequency(cmd.Frequency)
	if freq == "" {
		freq = domain.FrequencyDaily
	}

	habit, err := domain.NewHabit(cmd.UserID, cmd.Name, freq, cmd.Color, sharedApplication.DayOrToday(cmd.Date, h.now()))
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.habitRepo.Save(txCtx, habit); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewHabitCreated(habit)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		return outbox.Append(txCtx, h.outboxRepo, events...)
	})
	if err != nil {
		return nil, err
	}

	return &CreateHabitResult{HabitID: habit.ID}, nil
}
