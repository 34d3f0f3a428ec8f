package service

import (
	"context"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/observability"
	"quorum/internal/repository"
)

// StatsService reads per-user rollups and runs counter repair.
type StatsService struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, userRepo repository.UserRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo, userRepo: userRepo}
}

// GetUserStats returns the rollup cache-aside. Users with no activity get an
// all-zero rollup, not an error.
func (s *StatsService) GetUserStats(ctx context.Context, userID uint) (*models.ForumUserStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, asNotFound(err, "User", userID)
	}

	var stats models.ForumUserStats
	err := cache.Aside(ctx, cache.UserStatsKey(userID), &stats, cache.UserStatsTTL, func() error {
		fetched, err := s.statsRepo.GetForUser(ctx, userID)
		if err != nil {
			return err
		}
		stats = *fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecomputeUserStats rebuilds one user's rollup from source rows and reports
// whether the stored rollup had drifted.
func (s *StatsService) RecomputeUserStats(ctx context.Context, userID uint) (*models.ForumUserStats, bool, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, false, asNotFound(err, "User", userID)
	}

	before, err := s.statsRepo.GetForUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	rebuilt, err := s.statsRepo.Recompute(ctx, userID)
	if err != nil {
		observability.CounterRecomputeRuns.WithLabelValues("error").Inc()
		return nil, false, models.NewConsistencyError(err)
	}

	drifted := before.TopicCount != rebuilt.TopicCount ||
		before.PostCount != rebuilt.PostCount ||
		before.ReplyCount != rebuilt.ReplyCount ||
		before.UpvotesReceived != rebuilt.UpvotesReceived ||
		before.Reputation != rebuilt.Reputation

	result := "clean"
	if drifted {
		result = "drift"
	}
	observability.CounterRecomputeRuns.WithLabelValues(result).Inc()

	cache.InvalidateUserStats(ctx, userID)
	return rebuilt, drifted, nil
}

// RecomputeCategoryCounters rebuilds a category's denormalized counters.
func (s *StatsService) RecomputeCategoryCounters(ctx context.Context, categoryID uint) error {
	if err := s.statsRepo.RecomputeCategoryCounters(ctx, categoryID); err != nil {
		observability.CounterRecomputeRuns.WithLabelValues("error").Inc()
		return models.NewConsistencyError(err)
	}
	observability.CounterRecomputeRuns.WithLabelValues("clean").Inc()
	cache.InvalidateCategory(ctx, categoryID)
	return nil
}
