package eventbus

import (
	"context"
	"log/slog"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/resilience"
)

// BreakerPublisher stops calling a failing broker for a while. While open,
// Publish returns resilience.ErrCircuitOpen and the outbox keeps the
// message for a later retry.
type BreakerPublisher struct {
	next    Publisher
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerPublisher wraps next with a circuit breaker.
func NewBreakerPublisher(next Publisher, cfg resilience.BreakerConfig, logger *slog.Logger) *BreakerPublisher {
	return &BreakerPublisher{
		next:    next,
		breaker: resilience.NewBreaker("eventbus.publisher", cfg, logger),
	}
}

// Publish implements Publisher.
func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return resilience.Run(p.breaker, func() error {
		return p.next.Publish(ctx, routingKey, payload)
	})
}

// State reports the breaker state, e.g. "closed" or "open".
func (p *BreakerPublisher) State() string {
	return p.breaker.State().String()
}

// Close closes the wrapped publisher.
func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}
