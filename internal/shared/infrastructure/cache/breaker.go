package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/resilience"
)

// BreakerCache guards a remote cache with a circuit breaker. Misses do not
// count as failures.
type BreakerCache struct {
	next    Cache
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerCache wraps next.
func NewBreakerCache(next Cache, cfg resilience.BreakerConfig, logger *slog.Logger) *BreakerCache {
	return &BreakerCache{
		next:    next,
		breaker: resilience.NewBreaker("cache", cfg, logger),
	}
}

// Get implements Cache.
func (c *BreakerCache) Get(ctx context.Context, key string) ([]byte, error) {
	var val []byte
	miss := false
	err := resilience.Run(c.breaker, func() error {
		v, err := c.next.Get(ctx, key)
		if errors.Is(err, ErrCacheMiss) {
			miss = true
			return nil
		}
		val = v
		return err
	})
	if err != nil {
		return nil, err
	}
	if miss {
		return nil, ErrCacheMiss
	}
	return val, nil
}

// Set implements Cache.
func (c *BreakerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return resilience.Run(c.breaker, func() error {
		return c.next.Set(ctx, key, value, ttl)
	})
}

// Delete implements Cache.
func (c *BreakerCache) Delete(ctx context.Context, keys ...string) error {
	return resilience.Run(c.breaker, func() error {
		return c.next.Delete(ctx, keys...)
	})
}

// DeletePrefix implements Cache.
func (c *BreakerCache) DeletePrefix(ctx context.Context, prefix string) error {
	return resilience.Run(c.breaker, func() error {
		return c.next.DeletePrefix(ctx, prefix)
	})
}

// Close implements Cache.
func (c *BreakerCache) Close() error {
	return c.next.Close()
}
