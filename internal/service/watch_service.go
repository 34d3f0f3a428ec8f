package service

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/query"
	"quorum/internal/repository"
)

// WatchService manages per-user topic subscriptions.
type WatchService struct {
	watchRepo repository.WatchRepository
	topicRepo repository.TopicRepository
}

// NewWatchService creates a new WatchService
func NewWatchService(watchRepo repository.WatchRepository, topicRepo repository.TopicRepository) *WatchService {
	return &WatchService{watchRepo: watchRepo, topicRepo: topicRepo}
}

// Watch subscribes the user to a topic. Subscribing twice is a noop; the
// returned flag says whether membership actually changed.
func (s *WatchService) Watch(ctx context.Context, userID, topicID uint) (bool, error) {
	if _, err := s.topicRepo.GetByID(ctx, topicID); err != nil {
		return false, asNotFound(err, "Topic", topicID)
	}
	return s.watchRepo.Watch(ctx, userID, topicID)
}

func (s *WatchService) Unwatch(ctx context.Context, userID, topicID uint) (bool, error) {
	return s.watchRepo.Unwatch(ctx, userID, topicID)
}

func (s *WatchService) IsWatching(ctx context.Context, userID, topicID uint) (bool, error) {
	return s.watchRepo.IsWatching(ctx, userID, topicID)
}

func (s *WatchService) ListWatchedTopics(ctx context.Context, userID uint, page query.PageRequest) (*query.Page[*models.Topic], error) {
	items, count, err := s.watchRepo.ListForUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return &query.Page[*models.Topic]{Items: items, Count: count}, nil
}

// Watchers returns the ids of every user watching a topic, for notification
// fan-out by the external notification service.
func (s *WatchService) Watchers(ctx context.Context, topicID uint) ([]uint, error) {
	if _, err := s.topicRepo.GetByID(ctx, topicID); err != nil {
		return nil, asNotFound(err, "Topic", topicID)
	}
	return s.watchRepo.ListWatcherIDs(ctx, topicID)
}
