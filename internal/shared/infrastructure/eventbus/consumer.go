package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/shared/domain"
)

// EventConsumer handles specific event types.
type EventConsumer interface {
	// EventTypes returns the routing keys this consumer handles,
	// e.g. ["habits.habit.completion_toggled"].
	EventTypes() []string

	Handle(ctx context.Context, event *ConsumedEvent) error
}

// ConsumedEvent is the envelope of a delivered event. Payload holds the
// whole serialized event, so consumers can decode event-specific fields.
type ConsumedEvent struct {
	EventID       uuid.UUID            `json:"event_id"`
	AggregateID   uuid.UUID            `json:"aggregate_id"`
	AggregateType string               `json:"aggregate_type"`
	RoutingKey    string               `json:"routing_key"`
	OccurredAt    time.Time            `json:"occurred_at"`
	Metadata      domain.EventMetadata `json:"metadata"`
	Payload       json.RawMessage      `json:"-"`
}

// DecodeEvent parses a published payload. fallbackKey is used when the
// payload carries no routing key.
func DecodeEvent(payload []byte, fallbackKey string) (*ConsumedEvent, error) {
	event := &ConsumedEvent{}
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.RoutingKey == "" {
		event.RoutingKey = fallbackKey
	}
	event.Payload = json.RawMessage(payload)
	return event, nil
}

// Decode unmarshals the full event into v.
func (e *ConsumedEvent) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// ConsumerFunc adapts a function to EventConsumer.
type ConsumerFunc struct {
	types []string
	fn    func(ctx context.Context, event *ConsumedEvent) error
}

// NewConsumerFunc creates a consumer for the given routing keys.
func NewConsumerFunc(types []string, fn func(ctx context.Context, event *ConsumedEvent) error) *ConsumerFunc {
	return &ConsumerFunc{types: types, fn: fn}
}

// EventTypes implements EventConsumer.
func (c *ConsumerFunc) EventTypes() []string { return c.types }

// Handle implements EventConsumer.
func (c *ConsumerFunc) Handle(ctx context.Context, event *ConsumedEvent) error {
	return c.fn(ctx, event)
}
