package repository

import (
	"context"
	"time"

	"quorum/internal/models"
	"quorum/internal/observability"

	"gorm.io/gorm"
)

// statsDelta describes an adjustment to one user's materialized rollup.
// Zero fields are still written as +0; the upsert is a single statement so
// concurrent increments never lose updates.
type statsDelta struct {
	TopicCount      int64
	PostCount       int64
	ReplyCount      int64
	UpvotesReceived int64
	Reputation      int64
	LastPostAt      *time.Time
}

// applyStatsDelta upserts the per-user stats row inside the caller's
// transaction. Written as INSERT ... ON CONFLICT so it is atomic on both
// postgres and sqlite.
func applyStatsDelta(tx *gorm.DB, userID uint, d statsDelta) error {
	now := time.Now().UTC()
	if d.LastPostAt != nil {
		return tx.Exec(`
			INSERT INTO forum_user_stats (user_id, topic_count, post_count, reply_count, upvotes_received, reputation, last_post_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id) DO UPDATE SET
				topic_count = forum_user_stats.topic_count + excluded.topic_count,
				post_count = forum_user_stats.post_count + excluded.post_count,
				reply_count = forum_user_stats.reply_count + excluded.reply_count,
				upvotes_received = forum_user_stats.upvotes_received + excluded.upvotes_received,
				reputation = forum_user_stats.reputation + excluded.reputation,
				last_post_at = excluded.last_post_at,
				updated_at = excluded.updated_at`,
			userID, d.TopicCount, d.PostCount, d.ReplyCount, d.UpvotesReceived, d.Reputation, *d.LastPostAt, now,
		).Error
	}
	return tx.Exec(`
		INSERT INTO forum_user_stats (user_id, topic_count, post_count, reply_count, upvotes_received, reputation, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			topic_count = forum_user_stats.topic_count + excluded.topic_count,
			post_count = forum_user_stats.post_count + excluded.post_count,
			reply_count = forum_user_stats.reply_count + excluded.reply_count,
			upvotes_received = forum_user_stats.upvotes_received + excluded.upvotes_received,
			reputation = forum_user_stats.reputation + excluded.reputation,
			updated_at = excluded.updated_at`,
		userID, d.TopicCount, d.PostCount, d.ReplyCount, d.UpvotesReceived, d.Reputation, now,
	).Error
}

// StatsRepository reads and repairs the per-user materialized rollups. The
// rollups are written by the thread engine and vote ledger transactions;
// this repository only reads them and recomputes them from source rows.
type StatsRepository interface {
	GetForUser(ctx context.Context, userID uint) (*models.ForumUserStats, error)
	// Recompute replays topics, posts, replies, and votes to rebuild one
	// user's rollup. Returns the rebuilt row.
	Recompute(ctx context.Context, userID uint) (*models.ForumUserStats, error)
	// RecomputeCategoryCounters rebuilds one category's denormalized
	// topic/post counters and last-post pointers from source rows.
	RecomputeCategoryCounters(ctx context.Context, categoryID uint) error
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetForUser(ctx context.Context, userID uint) (*models.ForumUserStats, error) {
	var stats models.ForumUserStats
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		// no activity yet; an all-zero rollup is the correct answer
		return &models.ForumUserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) Recompute(ctx context.Context, userID uint) (*models.ForumUserStats, error) {
	defer observability.TrackQuery("recompute", "forum_user_stats")()

	var rebuilt models.ForumUserStats

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rebuilt = models.ForumUserStats{UserID: userID}

		if err := tx.Model(&models.Topic{}).Where("user_id = ?", userID).Count(&rebuilt.TopicCount).Error; err != nil {
			return err
		}
		// soft-deleted content stays counted, matching the write path
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Count(&rebuilt.PostCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Reply{}).Where("user_id = ?", userID).Count(&rebuilt.ReplyCount).Error; err != nil {
			return err
		}

		row := tx.Raw(`
			SELECT
				COALESCE(SUM(CASE WHEN v.value > 0 THEN 1 ELSE 0 END), 0) AS upvotes,
				COALESCE(SUM(v.value), 0) AS reputation
			FROM votes v
			WHERE (v.target_kind = 'post' AND v.target_id IN (SELECT id FROM posts WHERE user_id = ?))
			   OR (v.target_kind = 'reply' AND v.target_id IN (SELECT id FROM replies WHERE user_id = ?))`,
			userID, userID,
		).Row()
		if err := row.Scan(&rebuilt.UpvotesReceived, &rebuilt.Reputation); err != nil {
			return err
		}

		var lastPost models.Post
		if err := tx.Where("user_id = ?", userID).Order("created_at DESC").First(&lastPost).Error; err == nil {
			t := lastPost.CreatedAt
			rebuilt.LastPostAt = &t
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		rebuilt.UpdatedAt = time.Now().UTC()
		return tx.Save(&rebuilt).Error
	})
	if err != nil {
		return nil, err
	}
	return &rebuilt, nil
}

func (r *statsRepository) RecomputeCategoryCounters(ctx context.Context, categoryID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topicCount int64
		if err := tx.Model(&models.Topic{}).Where("category_id = ?", categoryID).Count(&topicCount).Error; err != nil {
			return err
		}

		var postCount int64
		if err := tx.Model(&models.Post{}).
			Where("topic_id IN (SELECT id FROM topics WHERE category_id = ?)", categoryID).
			Count(&postCount).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"topic_count":  topicCount,
			"post_count":   postCount,
			"last_post_id": nil,
			"last_post_at": nil,
		}

		var lastPost models.Post
		err := tx.Where("topic_id IN (SELECT id FROM topics WHERE category_id = ?)", categoryID).
			Order("created_at DESC").
			First(&lastPost).Error
		if err == nil {
			updates["last_post_id"] = lastPost.ID
			updates["last_post_at"] = lastPost.CreatedAt
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		return tx.Model(&models.Category{}).Where("id = ?", categoryID).Updates(updates).Error
	})
}
