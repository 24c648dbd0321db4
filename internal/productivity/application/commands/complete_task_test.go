package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/pulse/internal/shared/application/apptest"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox/outboxtest"
)

func pendingTask(t *testing.T, userID uuid.UUID) *task.Task {
	t.Helper()
	tk, err := task.NewTask(userID, "Ship release", value_objects.PriorityHigh, 60, time.Now())
	require.NoError(t, err)
	return &tk
}

func TestCompleteTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	doneAt := time.Date(2024, time.January, 10, 17, 0, 0, 0, time.UTC)

	t.Run("successfully completes a task", func(t *testing.T) {
		ctx := context.Background()
		existing := pendingTask(t, userID)
		repo := new(mockTaskRepo)
		outboxRepo := new(outboxtest.MockRepository)
		uow := new(apptest.MockUnitOfWork)
		handler := NewCompleteTaskHandler(repo, outboxRepo, uow)
		handler.now = func() time.Time { return doneAt }

		txCtx := uow.ExpectCommit(ctx)
		repo.On("FindByID", txCtx, existing.ID).Return(existing, nil)
		repo.On("Save", txCtx, mock.MatchedBy(func(tk task.Task) bool {
			return tk.Completed && tk.CompletedAt != nil && tk.CompletedAt.Equal(doneAt)
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, outboxtest.RoutingKeys(task.RoutingKeyCompleted)).Return(nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: existing.ID, UserID: userID})

		require.NoError(t, err)
		repo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("fails when the task does not exist", func(t *testing.T) {
		ctx := context.Background()
		repo := new(mockTaskRepo)
		uow := new(apptest.MockUnitOfWork)
		handler := NewCompleteTaskHandler(repo, new(outboxtest.MockRepository), uow)

		id := uuid.New()
		txCtx := uow.ExpectRollback(ctx)
		repo.On("FindByID", txCtx, id).Return(nil, nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: id, UserID: userID})

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("fails for another user's task", func(t *testing.T) {
		ctx := context.Background()
		existing := pendingTask(t, uuid.New())
		repo := new(mockTaskRepo)
		uow := new(apptest.MockUnitOfWork)
		handler := NewCompleteTaskHandler(repo, new(outboxtest.MockRepository), uow)

		txCtx := uow.ExpectRollback(ctx)
		repo.On("FindByID", txCtx, existing.ID).Return(existing, nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: existing.ID, UserID: userID})

		assert.ErrorIs(t, err, task.ErrNotOwner)
	})

	t.Run("fails when already completed", func(t *testing.T) {
		ctx := context.Background()
		existing := pendingTask(t, userID)
		done, err := existing.Complete(doneAt)
		require.NoError(t, err)
		repo := new(mockTaskRepo)
		uow := new(apptest.MockUnitOfWork)
		handler := NewCompleteTaskHandler(repo, new(outboxtest.MockRepository), uow)

		txCtx := uow.ExpectRollback(ctx)
		repo.On("FindByID", txCtx, done.ID).Return(&done, nil)

		err = handler.Handle(ctx, CompleteTaskCommand{TaskID: done.ID, UserID: userID})

		assert.ErrorIs(t, err, task.ErrTaskAlreadyComplete)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
