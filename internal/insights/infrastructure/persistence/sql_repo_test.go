package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database/dbtest"
)

func TestSQLDistractionRepository_SaveAndFindSince(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLDistractionRepository(dbtest.OpenSQLite(t))
	userID := uuid.New()
	sessionID := uuid.New()
	base := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

	old, err := domain.NewDistraction(userID, domain.DistractionEmail, "inbox", 5, base.AddDate(0, 0, -10))
	require.NoError(t, err)
	recent, err := domain.NewDistraction(userID, domain.DistractionSocialMedia, "twitter", 12, base)
	require.NoError(t, err)
	recent = recent.WithFocusSession(sessionID)
	later, err := domain.NewDistraction(userID, domain.DistractionNoise, "", 0, base.Add(time.Hour))
	require.NoError(t, err)
	other, err := domain.NewDistraction(uuid.New(), domain.DistractionOther, "", 1, base)
	require.NoError(t, err)

	for _, d := range []domain.Distraction{later, old, recent, other} {
		require.NoError(t, repo.Save(ctx, d))
	}

	found, err := repo.FindSince(ctx, userID, base.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, recent.ID, found[0].ID)
	assert.Equal(t, domain.DistractionSocialMedia, found[0].Type)
	assert.Equal(t, "twitter", found[0].Source)
	assert.Equal(t, 12, found[0].DurationMinutes)
	assert.True(t, base.Equal(found[0].Timestamp))
	require.NotNil(t, found[0].FocusSessionID)
	assert.Equal(t, sessionID, *found[0].FocusSessionID)

	assert.Equal(t, later.ID, found[1].ID)
	assert.Nil(t, found[1].FocusSessionID)
}

func TestSQLDistractionRepository_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLDistractionRepository(dbtest.OpenSQLite(t))
	at := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

	d, err := domain.NewDistraction(uuid.New(), domain.DistractionColleague, "desk visit", 3, at)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, d))

	d.DurationMinutes = 8
	require.NoError(t, repo.Save(ctx, d))

	found, err := repo.FindSince(ctx, d.UserID, at)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 8, found[0].DurationMinutes)
}

func TestSQLFocusSessionRepository_SaveAndFindSince(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLFocusSessionRepository(dbtest.OpenSQLite(t))
	userID := uuid.New()
	taskID := uuid.New()
	base := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

	done, err := domain.NewFocusSession(userID, 25, base, true)
	require.NoError(t, err)
	done = done.WithTask(taskID)
	abandoned, err := domain.NewFocusSession(userID, 10, base.Add(time.Hour), false)
	require.NoError(t, err)
	old, err := domain.NewFocusSession(userID, 50, base.AddDate(0, 0, -30), true)
	require.NoError(t, err)

	for _, s := range []domain.FocusSession{abandoned, done, old} {
		require.NoError(t, repo.Save(ctx, s))
	}

	found, err := repo.FindSince(ctx, userID, base.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, done.ID, found[0].ID)
	assert.True(t, found[0].Completed)
	assert.Equal(t, 25, found[0].DurationMinutes)
	require.NotNil(t, found[0].TaskID)
	assert.Equal(t, taskID, *found[0].TaskID)

	assert.Equal(t, abandoned.ID, found[1].ID)
	assert.False(t, found[1].Completed)
	assert.Nil(t, found[1].TaskID)
	assert.Equal(t, 25, domain.TotalFocusMinutes(found))
}
