// Package outboxtest provides a testify mock of outbox.Repository for
// command handler tests.
package outboxtest

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
)

// MockRepository is a mock implementation of outbox.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockRepository) GetPending(ctx context.Context, now time.Time, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockRepository) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *MockRepository) MarkDead(ctx context.Context, id int64, reason string, at time.Time) error {
	args := m.Called(ctx, id, reason, at)
	return args.Error(0)
}

func (m *MockRepository) DeleteOld(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Counts(ctx context.Context) (outbox.Counts, error) {
	args := m.Called(ctx)
	return args.Get(0).(outbox.Counts), args.Error(1)
}

// RoutingKeys matches a SaveBatch call whose messages carry exactly keys, in order.
func RoutingKeys(keys ...string) any {
	return mock.MatchedBy(func(msgs []*outbox.Message) bool {
		if len(msgs) != len(keys) {
			return false
		}
		for i, msg := range msgs {
			if msg.RoutingKey != keys[i] {
				return false
			}
		}
		return true
	})
}
