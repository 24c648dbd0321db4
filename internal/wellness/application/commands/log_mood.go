package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/pulse/internal/wellness/domain"
)

// LogMoodCommand records the user's mood for a day.
type LogMoodCommand struct {
	UserID uuid.UUID `validate:"required"`
	Score  int       `validate:"min=1,max=5"`
	Note   string    `validate:"max=500"`
	// Date is the day the mood applies to; empty means today.
	Date string `validate:"omitempty,date_key"`
}

// LogMoodResult contains the result of logging a mood.
type LogMoodResult struct {
	EntryID uuid.UUID
	Date    sharedDomain.DateKey
	// Replaced is true when an earlier entry for the same day was overwritten.
	Replaced bool
}

// LogMoodHandler handles the LogMoodCommand.
type LogMoodHandler struct {
	moodRepo   domain.MoodRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	now        func() time.Time
}

// NewLogMoodHandler creates a new LogMoodHandler.
func NewLogMoodHandler(moodRepo domain.MoodRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *LogMoodHandler {
	return &LogMoodHandler{
		moodRepo:   moodRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// Handle executes the LogMoodCommand.
func (h *LogMoodHandler) Handle(ctx context.Context, cmd LogMoodCommand) (*LogMoodResult, error) {
	cmd.Note = sharedApplication.SanitizeText(cmd.Note)
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	now := h.now()
	entry, err := domain.NewMoodEntry(cmd.UserID, sharedApplication.DayOrToday(cmd.Date, now), cmd.Score, cmd.Note, now)
	if err != nil {
		return nil, err
	}

	result := &LogMoodResult{EntryID: entry.ID, Date: entry.Date}
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		existing, err := h.moodRepo.FindByDate(txCtx, cmd.UserID, entry.Date)
		if err != nil {
			return err
		}
		result.Replaced = existing != nil

		if err := h.moodRepo.Save(txCtx, entry); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewMoodLogged(entry)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		return outbox.Append(txCtx, h.outboxRepo, events...)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
