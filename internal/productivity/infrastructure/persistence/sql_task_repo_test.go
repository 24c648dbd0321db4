package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/dbtest"
)

func TestSQLTaskRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(dbtest.OpenSQLite(t))
	userID := uuid.New()
	createdAt := time.Date(2024, time.January, 10, 9, 30, 0, 0, time.UTC)

	newTask, err := task.NewTask(userID, "Write report", value_objects.PriorityHigh, 45, createdAt)
	require.NoError(t, err)
	newTask.Category = "work"
	newTask.DueDate = "2024-01-12"
	newTask.FocusMode = true

	require.NoError(t, repo.Save(ctx, newTask))

	found, err := repo.FindByID(ctx, newTask.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, newTask.ID, found.ID)
	assert.Equal(t, userID, found.UserID)
	assert.Equal(t, "Write report", found.Title)
	assert.Equal(t, value_objects.PriorityHigh, found.Priority)
	assert.Equal(t, 45, found.TimeEstimate)
	assert.Equal(t, "work", found.Category)
	assert.Equal(t, "2024-01-12", found.DueDate)
	assert.True(t, found.FocusMode)
	assert.False(t, found.Completed)
	assert.Nil(t, found.CompletedAt)
	assert.True(t, createdAt.Equal(found.CreatedAt))
}

func TestSQLTaskRepository_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(dbtest.OpenSQLite(t))

	newTask, err := task.NewTask(uuid.New(), "Ship it", value_objects.PriorityMedium, 30, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newTask))

	doneAt := time.Date(2024, time.January, 11, 17, 0, 0, 0, time.UTC)
	done, err := newTask.Complete(doneAt)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, done))

	found, err := repo.FindByID(ctx, newTask.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Completed)
	require.NotNil(t, found.CompletedAt)
	assert.True(t, doneAt.Equal(*found.CompletedAt))
}

func TestSQLTaskRepository_FindByID_NotFound(t *testing.T) {
	repo := NewSQLTaskRepository(dbtest.OpenSQLite(t))

	found, err := repo.FindByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLTaskRepository_FindByUserID(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(dbtest.OpenSQLite(t))
	userID := uuid.New()
	base := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

	for i, title := range []string{"first", "second", "third"} {
		tk, err := task.NewTask(userID, title, value_objects.PriorityLow, 0, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tk))
	}
	other, err := task.NewTask(uuid.New(), "someone else", value_objects.PriorityLow, 0, base)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	tasks, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "third", tasks[2].Title)

	empty, err := repo.FindByUserID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLTaskRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(dbtest.OpenSQLite(t))

	tk, err := task.NewTask(uuid.New(), "Temporary", value_objects.PriorityLow, 0, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tk))

	require.NoError(t, repo.Delete(ctx, tk.ID))
	require.NoError(t, repo.Delete(ctx, tk.ID))

	found, err := repo.FindByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
