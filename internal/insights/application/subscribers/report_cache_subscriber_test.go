package subscribers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	habitDomain "github.com/felixgeelhaar/pulse/internal/habits/domain"
	"github.com/felixgeelhaar/pulse/internal/insights/application/queries"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/cache"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/eventbus"
)

func TestReportCacheSubscriber_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	c := cache.NewMemoryCache()
	require.NoError(t, c.Set(ctx, queries.DailyReportKey(userID, "2024-01-09"), []byte("{}"), time.Hour))
	require.NoError(t, c.Set(ctx, queries.DailyReportKey(userID, "2024-01-10"), []byte("{}"), time.Hour))
	require.NoError(t, c.Set(ctx, queries.DailyReportKey(otherID, "2024-01-10"), []byte("{}"), time.Hour))

	sub := NewReportCacheSubscriber(c, nil)
	assert.Contains(t, sub.EventTypes(), habitDomain.RoutingKeyHabitCompletionToggled)

	t.Run("drops only the user's reports", func(t *testing.T) {
		err := sub.Handle(ctx, &eventbus.ConsumedEvent{
			RoutingKey: habitDomain.RoutingKeyHabitCompletionToggled,
			Metadata:   sharedDomain.EventMetadata{UserID: userID},
		})

		require.NoError(t, err)
		_, err = c.Get(ctx, queries.DailyReportKey(userID, "2024-01-09"))
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
		_, err = c.Get(ctx, queries.DailyReportKey(userID, "2024-01-10"))
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
		_, err = c.Get(ctx, queries.DailyReportKey(otherID, "2024-01-10"))
		assert.NoError(t, err)
	})

	t.Run("ignores events without a user", func(t *testing.T) {
		err := sub.Handle(ctx, &eventbus.ConsumedEvent{RoutingKey: habitDomain.RoutingKeyHabitCreated})

		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("dispatches through the registry", func(t *testing.T) {
		registry := eventbus.NewConsumerRegistry(nil)
		registry.Register(sub)
		require.NoError(t, c.Set(ctx, queries.DailyReportKey(userID, "2024-01-11"), []byte("{}"), time.Hour))

		err := registry.Dispatch(ctx, &eventbus.ConsumedEvent{
			RoutingKey: "wellness.mood.logged",
			Metadata:   sharedDomain.EventMetadata{UserID: userID},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})
}
