package eventbus

import (
	"context"
	"log/slog"
)

// InProcessEventBus is the Publisher used when RabbitMQ is not configured.
// Publish decodes the payload and dispatches it synchronously, so the
// consumers see exactly what a broker would have delivered.
type InProcessEventBus struct {
	*ConsumerRegistry
}

// NewInProcessEventBus creates a bus with an empty registry.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	return &InProcessEventBus{ConsumerRegistry: NewConsumerRegistry(logger)}
}

// RegisterConsumer subscribes consumer to its event types.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.Register(consumer)
}

// Publish never fails: a consumer error must not roll back the outbox
// message that carried the event, so failures are only logged.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event, err := DecodeEvent(payload, routingKey)
	if err != nil {
		b.logger.ErrorContext(ctx, "dropping undecodable event", "routing_key", routingKey, "error", err)
		return nil
	}
	_ = b.Dispatch(ctx, event)
	return nil
}

// Close implements Publisher.
func (b *InProcessEventBus) Close() error { return nil }
