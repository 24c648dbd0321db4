package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	"github.com/felixgeelhaar/pulse/internal/shared/application/apptest"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox/outboxtest"
)

type mockDistractionRepo struct {
	mock.Mock
}

func (m *mockDistractionRepo) Save(ctx context.Context, d domain.Distraction) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDistractionRepo) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Distraction, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Distraction), args.Error(1)
}

type mockFocusSessionRepo struct {
	mock.Mock
}

func (m *mockFocusSessionRepo) Save(ctx context.Context, s domain.FocusSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockFocusSessionRepo) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.FocusSession, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FocusSession), args.Error(1)
}

var fixedNow = time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC)

func TestLogDistractionHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("logs a distraction at now", func(t *testing.T) {
		ctx := context.Background()
		sessionID := uuid.New()
		repo := new(mockDistractionRepo)
		outboxRepo := new(outboxtest.MockRepository)
		uow := new(apptest.MockUnitOfWork)
		handler := NewLogDistractionHandler(repo, outboxRepo, uow)
		handler.now = func() time.Time { return fixedNow }

		txCtx := uow.ExpectCommit(ctx)
		repo.On("Save", txCtx, mock.MatchedBy(func(d domain.Distraction) bool {
			return d.Type == domain.DistractionSocialMedia &&
				d.Source == "twitter" &&
				d.DurationMinutes == 12 &&
				d.Timestamp.Equal(fixedNow) &&
				d.FocusSessionID != nil && *d.FocusSessionID == sessionID
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, outboxtest.RoutingKeys(domain.RoutingKeyDistractionLogged)).Return(nil)

		result, err := handler.Handle(ctx, LogDistractionCommand{
			UserID:          userID,
			Type:            "social_media",
			Source:          " twitter\x00",
			DurationMinutes: 12,
			FocusSessionID:  &sessionID,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.DistractionID)
		repo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		handler := NewLogDistractionHandler(new(mockDistractionRepo), new(outboxtest.MockRepository), new(apptest.MockUnitOfWork))

		_, err := handler.Handle(context.Background(), LogDistractionCommand{UserID: userID, Type: "cat"})

		assert.ErrorIs(t, err, sharedApplication.ErrValidation)
		assert.Contains(t, sharedApplication.ValidationMessages(err), "Type is not a valid distraction_type")
	})

	t.Run("rolls back when the outbox fails", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockDistractionRepo)
		outboxRepo := new(outboxtest.MockRepository)
		uow := new(apptest.MockUnitOfWork)
		handler := NewLogDistractionHandler(repo, outboxRepo, uow)

		txCtx := uow.ExpectRollback(ctx)
		repo.On("Save", txCtx, mock.Anything).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(errors.New("outbox full"))

		_, err := handler.Handle(ctx, LogDistractionCommand{UserID: userID, Type: "email"})

		assert.EqualError(t, err, "outbox full")
		uow.AssertExpectations(t)
	})
}

func TestLogFocusSessionHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("backdates the start by the duration", func(t *testing.T) {
		ctx := context.Background()
		taskID := uuid.New()
		repo := new(mockFocusSessionRepo)
		outboxRepo := new(outboxtest.MockRepository)
		uow := new(apptest.MockUnitOfWork)
		handler := NewLogFocusSessionHandler(repo, outboxRepo, uow)
		handler.now = func() time.Time { return fixedNow }

		txCtx := uow.ExpectCommit(ctx)
		repo.On("Save", txCtx, mock.MatchedBy(func(s domain.FocusSession) bool {
			return s.DurationMinutes == 25 &&
				s.Completed &&
				s.Timestamp.Equal(fixedNow.Add(-25*time.Minute)) &&
				s.TaskID != nil && *s.TaskID == taskID
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, outboxtest.RoutingKeys(domain.RoutingKeyFocusSessionLogged)).Return(nil)

		result, err := handler.Handle(ctx, LogFocusSessionCommand{UserID: userID, DurationMinutes: 25, Completed: true, TaskID: &taskID})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.SessionID)
		repo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("requires a positive duration", func(t *testing.T) {
		handler := NewLogFocusSessionHandler(new(mockFocusSessionRepo), new(outboxtest.MockRepository), new(apptest.MockUnitOfWork))

		_, err := handler.Handle(context.Background(), LogFocusSessionCommand{UserID: userID})

		assert.ErrorIs(t, err, sharedApplication.ErrValidation)
	})
}
