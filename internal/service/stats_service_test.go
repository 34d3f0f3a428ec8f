package service

import (
	"context"
	"testing"

	"quorum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetUserStats_ZeroRollup(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(noopStatsRepo(), noopUserRepo())

	stats, err := svc.GetUserStats(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), stats.UserID)
	assert.Zero(t, stats.TopicCount)
}

func TestStatsService_GetUserStats_MissingUser(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		return nil, gormNotFound()
	}
	svc := NewStatsService(noopStatsRepo(), userRepo)

	_, err := svc.GetUserStats(context.Background(), 5)
	assertNotFoundError(t, err)
}

func TestStatsService_RecomputeUserStats_ReportsDrift(t *testing.T) {
	t.Parallel()

	statsRepo := noopStatsRepo()
	statsRepo.getForUserFn = func(_ context.Context, userID uint) (*models.ForumUserStats, error) {
		return &models.ForumUserStats{UserID: userID, TopicCount: 9}, nil
	}
	statsRepo.recomputeFn = func(_ context.Context, userID uint) (*models.ForumUserStats, error) {
		return &models.ForumUserStats{UserID: userID, TopicCount: 2}, nil
	}
	svc := NewStatsService(statsRepo, noopUserRepo())

	rebuilt, drifted, err := svc.RecomputeUserStats(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, drifted)
	assert.Equal(t, int64(2), rebuilt.TopicCount)
}

func TestStatsService_RecomputeUserStats_Clean(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(noopStatsRepo(), noopUserRepo())

	_, drifted, err := svc.RecomputeUserStats(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, drifted)
}
