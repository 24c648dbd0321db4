// Package subscribers reacts to events from every context on behalf of the
// insights read models.
package subscribers

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	goalDomain "github.com/felixgeelhaar/pulse/internal/goals/domain"
	habitDomain "github.com/felixgeelhaar/pulse/internal/habits/domain"
	"github.com/felixgeelhaar/pulse/internal/insights/application/queries"
	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/cache"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/eventbus"
	wellnessDomain "github.com/felixgeelhaar/pulse/internal/wellness/domain"
)

// ReportCacheSubscriber drops a user's cached daily reports whenever one of
// their writes could change them.
type ReportCacheSubscriber struct {
	cache  cache.Cache
	logger *slog.Logger
}

// NewReportCacheSubscriber creates a new report cache subscriber.
func NewReportCacheSubscriber(c cache.Cache, logger *slog.Logger) *ReportCacheSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportCacheSubscriber{cache: c, logger: logger}
}

// EventTypes returns the event types this subscriber handles.
func (s *ReportCacheSubscriber) EventTypes() []string {
	return []string{
		task.RoutingKeyCreated,
		task.RoutingKeyCompleted,
		habitDomain.RoutingKeyHabitCreated,
		habitDomain.RoutingKeyHabitCompletionToggled,
		goalDomain.RoutingKeyGoalCreated,
		goalDomain.RoutingKeyGoalUpdated,
		goalDomain.RoutingKeyGoalCompleted,
		domain.RoutingKeyDistractionLogged,
		domain.RoutingKeyFocusSessionLogged,
		wellnessDomain.RoutingKeyMoodLogged,
	}
}

// Handle processes an event.
func (s *ReportCacheSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	userID := event.Metadata.UserID
	if userID == uuid.Nil {
		s.logger.Warn("event without user id, skipping report invalidation",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	if err := s.cache.DeletePrefix(ctx, queries.DailyReportPrefix(userID)); err != nil {
		return err
	}

	s.logger.Debug("invalidated daily reports",
		"user_id", userID,
		"routing_key", event.RoutingKey,
	)
	return nil
}
