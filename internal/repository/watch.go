package repository

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// WatchRepository is the topic watch registry. Watch and Unwatch are pure
// set operations: adding an existing member or removing a missing one is a
// clean noop, reported through the changed flag.
type WatchRepository interface {
	Watch(ctx context.Context, userID, topicID uint) (changed bool, err error)
	Unwatch(ctx context.Context, userID, topicID uint) (changed bool, err error)
	IsWatching(ctx context.Context, userID, topicID uint) (bool, error)
	// ListForUser returns the topics a user watches, newest watch first.
	ListForUser(ctx context.Context, userID uint, page query.PageRequest) ([]*models.Topic, int64, error)
	// ListWatcherIDs returns every user id watching a topic, for
	// notification fan-out.
	ListWatcherIDs(ctx context.Context, topicID uint) ([]uint, error)
}

type watchRepository struct {
	db *gorm.DB
}

// NewWatchRepository creates a new WatchRepository
func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

func (r *watchRepository) Watch(ctx context.Context, userID, topicID uint) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO topic_watches (user_id, topic_id, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, topic_id) DO NOTHING`,
		userID, topicID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *watchRepository) Unwatch(ctx context.Context, userID, topicID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Delete(&models.TopicWatch{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *watchRepository) IsWatching(ctx context.Context, userID, topicID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TopicWatch{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Count(&count).Error
	return count > 0, err
}

func (r *watchRepository) ListForUser(ctx context.Context, userID uint, page query.PageRequest) ([]*models.Topic, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.TopicWatch{}).Where("user_id = ?", userID)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	p := page.Normalize()
	var topics []*models.Topic
	err := r.db.WithContext(ctx).Model(&models.Topic{}).
		Joins("JOIN topic_watches tw ON tw.topic_id = topics.id").
		Where("tw.user_id = ?", userID).
		Order("tw.created_at desc").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}
	return topics, count, nil
}

func (r *watchRepository) ListWatcherIDs(ctx context.Context, topicID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.TopicWatch{}).
		Where("topic_id = ?", topicID).
		Order("created_at asc").
		Pluck("user_id", &ids).Error
	return ids, err
}
