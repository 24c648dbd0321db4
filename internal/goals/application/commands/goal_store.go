package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// goalStore bundles what every goal write handler needs.
type goalStore struct {
	goalRepo   domain.Repository
	outboxRepo outbox.Repository
}

func (s goalStore) loadOwned(ctx context.Context, goalID, userID uuid.UUID) (domain.Goal, error) {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return domain.Goal{}, err
	}
	if goal == nil {
		return domain.Goal{}, domain.ErrGoalNotFound
	}
	if goal.UserID != userID {
		return domain.Goal{}, domain.ErrNotOwner
	}
	return *goal, nil
}

// save persists after and records a GoalUpdated event, followed by
// GoalCompleted when the change moved the goal into the completed state.
func (s goalStore) save(ctx context.Context, userID uuid.UUID, before, after domain.Goal) error {
	if err := s.goalRepo.Save(ctx, after); err != nil {
		return err
	}

	events := []sharedDomain.DomainEvent{domain.NewGoalUpdated(after)}
	if before.Status != domain.StatusCompleted && after.Status == domain.StatusCompleted {
		events = append(events, domain.NewGoalCompleted(after))
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, userID))
	return outbox.Append(ctx, s.outboxRepo, events...)
}
