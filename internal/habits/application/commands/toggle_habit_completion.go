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

// ToggleHabitCompletionCommand flips one day in a habit's completion set.
type ToggleHabitCompletionCommand struct {
	HabitID uuid.UUID `validate:"required"`
	UserID  uuid.UUID `validate:"required"`
	// Date is the day to toggle; empty means today.
	Date string `validate:"omitempty,date_key"`
}

// ToggleHabitCompletionResult contains the habit state after the toggle.
type ToggleHabitCompletionResult struct {
	HabitID       uuid.UUID
	Date          sharedDomain.DateKey
	Completed     bool
	CurrentStreak int
	LongestStreak int
}

// ToggleHabitCompletionHandler handles the ToggleHabitCompletionCommand.
type ToggleHabitCompletionHandler struct {
	habitRepo  domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	now        func() time.Time
}

// NewToggleHabitCompletionHandler creates a new ToggleHabitCompletionHandler.
func NewToggleHabitCompletionHandler(habitRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *ToggleHabitCompletionHandler {
	return &ToggleHabitCompletionHandler{
		habitRepo:  habitRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// Handle executes the ToggleHabitCompletionCommand. Streaks are recomputed
// against today, whichever day was toggled.
func (h *ToggleHabitCompletionHandler) Handle(ctx context.Context, cmd ToggleHabitCompletionCommand) (*ToggleHabitCompletionResult, error) {
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	now := h.now()
	today := sharedDomain.TodayKey(now)
	day := sharedApplication.DayOrToday(cmd.Date, now)

	var result *ToggleHabitCompletionResult
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		habit, err := h.habitRepo.FindByID(txCtx, cmd.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			return domain.ErrHabitNotFound
		}
		if habit.UserID != cmd.UserID {
			return domain.ErrNotOwner
		}

		toggled := habit.ToggleCompletion(day, today)
		if err := h.habitRepo.Save(txCtx, toggled); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewHabitCompletionToggled(toggled, day)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		if err := outbox.Append(txCtx, h.outboxRepo, events...); err != nil {
			return err
		}

		result = &ToggleHabitCompletionResult{
			HabitID:       toggled.ID,
			Date:          day,
			Completed:     toggled.IsCompletedOn(day),
			CurrentStreak: toggled.CurrentStreak,
			LongestStreak: toggled.LongestStreak,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
