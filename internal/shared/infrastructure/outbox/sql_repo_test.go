package outbox_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/dbtest"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

func newMessage(routingKey string, createdAt time.Time) *outbox.Message {
	payload, _ := json.Marshal(map[string]string{"routing_key": routingKey})
	return &outbox.Message{
		EventID:       uuid.New(),
		AggregateType: "Habit",
		AggregateID:   uuid.New(),
		EventType:     routingKey,
		RoutingKey:    routingKey,
		Payload:       payload,
		Metadata:      json.RawMessage(`{"user_id":"` + uuid.NewString() + `"}`),
		CreatedAt:     createdAt,
	}
}

func TestSQLRepository_SaveAndGetPending(t *testing.T) {
	ctx := context.Background()
	repo := outbox.NewSQLRepository(dbtest.OpenSQLite(t))
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	first := newMessage("habits.habit.created", now.Add(-time.Minute))
	second := newMessage("habits.habit.completion_toggled", now)
	require.NoError(t, repo.SaveBatch(ctx, []*outbox.Message{first, second}))
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	pending, err := repo.GetPending(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.EventID, pending[0].EventID)
	assert.Equal(t, first.AggregateID, pending[0].AggregateID)
	assert.JSONEq(t, string(first.Payload), string(pending[0].Payload))
	assert.JSONEq(t, string(first.Metadata), string(pending[0].Metadata))
	assert.True(t, first.CreatedAt.Equal(pending[0].CreatedAt))

	limited, err := repo.GetPending(ctx, now, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := outbox.NewSQLRepository(dbtest.OpenSQLite(t))
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	published := newMessage("a", now)
	retrying := newMessage("b", now)
	dead := newMessage("c", now)
	require.NoError(t, repo.SaveBatch(ctx, []*outbox.Message{published, retrying, dead}))

	require.NoError(t, repo.MarkPublished(ctx, published.ID, now))
	require.NoError(t, repo.MarkFailed(ctx, retrying.ID, "broker down", now.Add(time.Minute)))
	require.NoError(t, repo.MarkDead(ctx, dead.ID, "gave up", now))

	pending, err := repo.GetPending(ctx, now, 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "the retry is not due yet")

	pending, err = repo.GetPending(ctx, now.Add(2*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, retrying.ID, pending[0].ID)
	assert.Equal(t, 1, pending[0].RetryCount)
	require.NotNil(t, pending[0].LastError)
	assert.Equal(t, "broker down", *pending[0].LastError)
	assert.Equal(t, outbox.StatusRetrying, pending[0].Status())

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, outbox.Counts{Retrying: 1, Published: 1, DeadLettered: 1}, counts)

	deleted, err := repo.DeleteOld(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestSQLRepository_SaveBatchJoinsUnitOfWork(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.OpenSQLite(t)
	repo := outbox.NewSQLRepository(conn)
	uow := database.NewUnitOfWork(conn)

	err := sharedApplication.WithUnitOfWork(ctx, uow, func(txCtx context.Context) error {
		if err := repo.SaveBatch(txCtx, []*outbox.Message{newMessage("a", time.Now())}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Pending)
}

type appendedEvent struct {
	domain.BaseEvent
	Note string `json:"note"`
}

func TestAppend(t *testing.T) {
	ctx := context.Background()
	repo := outbox.NewSQLRepository(dbtest.OpenSQLite(t))
	userID := uuid.New()

	first := &appendedEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Habit", "habits.habit.created"), Note: "a"}
	second := &appendedEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Habit", "habits.habit.completion_toggled"), Note: "b"}
	events := []domain.DomainEvent{first, second}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, userID))

	require.NoError(t, outbox.Append(ctx, repo))
	require.NoError(t, outbox.Append(ctx, repo, events...))

	pending, err := repo.GetPending(ctx, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "habits.habit.created", pending[0].RoutingKey)
	assert.Equal(t, first.EventID(), pending[0].EventID)
	assert.Contains(t, string(pending[1].Payload), `"note":"b"`)
	assert.Contains(t, string(pending[1].Metadata), userID.String())
}
