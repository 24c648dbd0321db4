package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/pkg/observability"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata returns the metadata shared by the events of one command.
// The correlation id is the one carried by ctx, so every event a CLI
// command produces can be traced back to it; a fresh id is used otherwise.
// The causation id starts out equal to the correlation id: the command
// itself caused the first event.
func NewEventMetadata(ctx context.Context, userID uuid.UUID) domain.EventMetadata {
	correlationID, err := uuid.Parse(observability.CorrelationIDFromContext(ctx))
	if err != nil {
		correlationID = uuid.New()
	}
	return domain.EventMetadata{
		CorrelationID: correlationID,
		CausationID:   correlationID,
		UserID:        userID,
	}
}

// ApplyEventMetadata stamps metadata on every event that accepts it. Events
// after the first record the first event as their cause, e.g. a goal
// completion is caused by the update that finished its last milestone.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for i, event := range events {
		setter, ok := event.(metadataSetter)
		if !ok {
			continue
		}
		m := metadata
		if i > 0 {
			m.CausationID = events[0].EventID()
		}
		setter.SetMetadata(m)
	}
}
