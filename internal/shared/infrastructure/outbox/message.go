package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// Status is the delivery state of a message.
type Status string

const (
	StatusPending      Status = "pending"
	StatusRetrying     Status = "retrying"
	StatusPublished    Status = "published"
	StatusDeadLettered Status = "dead_lettered"
)

// Message is a domain event waiting in, or delivered from, the outbox.
type Message struct {
	ID               int64
	EventID          uuid.UUID
	AggregateType    string
	AggregateID      uuid.UUID
	EventType        string
	RoutingKey       string
	Payload          json.RawMessage
	Metadata         json.RawMessage
	CreatedAt        time.Time
	PublishedAt      *time.Time
	NextRetryAt      *time.Time
	RetryCount       int
	LastError        *string
	DeadLetteredAt   *time.Time
	DeadLetterReason *string
}

// NewMessage serializes a domain event into an outbox message.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	metadata, err := json.Marshal(event.Metadata())
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		EventType:     event.RoutingKey(),
		RoutingKey:    event.RoutingKey(),
		Payload:       payload,
		Metadata:      metadata,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// NewMessages serializes events in order.
func NewMessages(events []domain.DomainEvent) ([]*Message, error) {
	msgs := make([]*Message, 0, len(events))
	for _, event := range events {
		msg, err := NewMessage(event)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Status derives the delivery state from the timestamps.
func (m *Message) Status() Status {
	switch {
	case m.PublishedAt != nil:
		return StatusPublished
	case m.DeadLetteredAt != nil:
		return StatusDeadLettered
	case m.RetryCount > 0:
		return StatusRetrying
	default:
		return StatusPending
	}
}

// IsPublished returns true if the message has been published.
func (m *Message) IsPublished() bool {
	return m.PublishedAt != nil
}

// CanRetry returns true if another attempt fits in maxRetries.
func (m *Message) CanRetry(maxRetries int) bool {
	return m.RetryCount < maxRetries
}

// Append serializes events and stores them through repo. Call it with the
// transaction context of the write that produced the events.
func Append(ctx context.Context, repo Repository, events ...domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs, err := NewMessages(events)
	if err != nil {
		return err
	}
	return repo.SaveBatch(ctx, msgs)
}
