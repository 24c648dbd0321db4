package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/pkg/observability"
)

// ConsumerRegistry routes consumed events to the consumers subscribed to
// their routing key. Both the in-process bus and the RabbitMQ consumer
// dispatch through it.
type ConsumerRegistry struct {
	mu     sync.RWMutex
	routes map[string][]EventConsumer
	logger *slog.Logger
}

// NewConsumerRegistry creates an empty registry. A nil logger uses the
// default logger.
func NewConsumerRegistry(logger *slog.Logger) *ConsumerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumerRegistry{routes: make(map[string][]EventConsumer), logger: logger}
}

// Register subscribes consumer to each of its event types.
func (r *ConsumerRegistry) Register(consumer EventConsumer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range consumer.EventTypes() {
		r.routes[key] = append(r.routes[key], consumer)
	}
}

// Consumers returns the consumers subscribed to routingKey.
func (r *ConsumerRegistry) Consumers(routingKey string) []EventConsumer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.routes[routingKey])
}

// RoutingKeys returns the subscribed routing keys in sorted order.
func (r *ConsumerRegistry) RoutingKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.routes))
	for key := range r.routes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of subscriptions. A consumer registered for two
// event types counts twice.
func (r *ConsumerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, consumers := range r.routes {
		n += len(consumers)
	}
	return n
}

// Dispatch hands event to every subscribed consumer. The context carries
// the event's correlation id so that log lines written while handling it
// join the command that produced it. Every consumer runs even when an
// earlier one fails; failures and panics are joined into the result.
func (r *ConsumerRegistry) Dispatch(ctx context.Context, event *ConsumedEvent) error {
	if id := event.Metadata.CorrelationID; id != uuid.Nil {
		ctx = observability.WithCorrelationID(ctx, id.String())
	}

	start := time.Now()
	var errs []error
	for _, consumer := range r.Consumers(event.RoutingKey) {
		if err := handleSafely(ctx, consumer, event); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)

	attrs := []any{
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		observability.DurationKey, time.Since(start).Milliseconds(),
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "event dispatch failed", append(attrs, observability.ErrorKey, err)...)
	} else {
		r.logger.DebugContext(ctx, "event dispatched", attrs...)
	}
	return err
}

func handleSafely(ctx context.Context, consumer EventConsumer, event *ConsumedEvent) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("consumer panicked on %s: %v", event.RoutingKey, p)
		}
	}()
	return consumer.Handle(ctx, event)
}
