package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// LogDistractionCommand records an interruption.
type LogDistractionCommand struct {
	UserID          uuid.UUID `validate:"required"`
	Type            string    `validate:"required,distraction_type"`
	Source          string    `validate:"max=100"`
	DurationMinutes int       `validate:"min=0,max=480"`
	FocusSessionID  *uuid.UUID
	// OccurredAt defaults to now.
	OccurredAt time.Time
}

// LogDistractionResult contains the id of the logged distraction.
type LogDistractionResult struct {
	DistractionID uuid.UUID
}

// LogDistractionHandler handles the LogDistractionCommand.
type LogDistractionHandler struct {
	distractionRepo domain.DistractionRepository
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
	now             func() time.Time
}

// NewLogDistractionHandler creates a new LogDistractionHandler.
func NewLogDistractionHandler(distractionRepo domain.DistractionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *LogDistractionHandler {
	return &LogDistractionHandler{
		distractionRepo: distractionRepo,
		outboxRepo:      outboxRepo,
		uow:             uow,
		now:             time.Now,
	}
}

// Handle executes the LogDistractionCommand.
func (h *LogDistractionHandler) Handle(ctx context.Context, cmd LogDistractionCommand) (*LogDistractionResult, error) {
	cmd.Source = sharedApplication.SanitizeText(cmd.Source)
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	at := cmd.OccurredAt
	if at.IsZero() {
		at = h.now()
	}

	distraction, err := domain.NewDistraction(cmd.UserID, domain.DistractionType(cmd.Type), cmd.Source, cmd.DurationMinutes, at)
	if err != nil {
		return nil, err
	}
	if cmd.FocusSessionID != nil {
		distraction = distraction.WithFocusSession(*cmd.FocusSessionID)
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.distractionRepo.Save(txCtx, distraction); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewDistractionLogged(distraction)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		return outbox.Append(txCtx, h.outboxRepo, events...)
	})
	if err != nil {
		return nil, err
	}

	return &LogDistractionResult{DistractionID: distraction.ID}, nil
}
