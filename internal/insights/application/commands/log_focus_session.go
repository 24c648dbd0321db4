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

// LogFocusSessionCommand records a finished or abandoned focus session.
type LogFocusSessionCommand struct {
	UserID          uuid.UUID `validate:"required"`
	DurationMinutes int       `validate:"required,min=1,max=480"`
	Completed       bool
	TaskID          *uuid.UUID
	// StartedAt defaults to now minus the duration.
	StartedAt time.Time
}

// LogFocusSessionResult contains the id of the logged session.
type LogFocusSessionResult struct {
	SessionID uuid.UUID
}

// LogFocusSessionHandler handles the LogFocusSessionCommand.
type LogFocusSessionHandler struct {
	sessionRepo domain.FocusSessionRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	now         func() time.Time
}

// NewLogFocusSessionHandler creates a new LogFocusSessionHandler.
func NewLogFocusSessionHandler(sessionRepo domain.FocusSessionRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *LogFocusSessionHandler {
	return &LogFocusSessionHandler{
		sessionRepo: sessionRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
		now:         time.Now,
	}
}

// Handle executes the LogFocusSessionCommand.
func (h *LogFocusSessionHandler) Handle(ctx context.Context, cmd LogFocusSessionCommand) (*LogFocusSessionResult, error) {
	if err := sharedApplication.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	started := cmd.StartedAt
	if started.IsZero() {
		started = h.now().Add(-time.Duration(cmd.DurationMinutes) * time.Minute)
	}

	session, err := domain.NewFocusSession(cmd.UserID, cmd.DurationMinutes, started, cmd.Completed)
	if err != nil {
		return nil, err
	}
	if cmd.TaskID != nil {
		session = session.WithTask(*cmd.TaskID)
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.sessionRepo.Save(txCtx, session); err != nil {
			return err
		}

		events := []sharedDomain.DomainEvent{domain.NewFocusSessionLogged(session)}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(txCtx, cmd.UserID))
		return outbox.Append(txCtx, h.outboxRepo, events...)
	})
	if err != nil {
		return nil, err
	}

	return &LogFocusSessionResult{SessionID: session.ID}, nil
}
