package repository

import (
	"context"
	"time"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// PostFilter holds list filters for posts within a topic. IncludeDeleted is
// the moderator-scoped variant; public reads never see soft-deleted rows.
type PostFilter struct {
	TopicID        uint
	UserID         uint
	IncludeDeleted bool
	Page           query.PageRequest
}

var postSort = query.Sortable{
	Columns: map[string]string{
		"createdAt": "created_at",
		"score":     "score",
	},
	Default: "created_at asc",
}

const postReplyCountSelect = "posts.*, (SELECT COUNT(*) FROM replies r WHERE r.post_id = posts.id AND r.is_deleted = false) AS reply_count"

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	// Create inserts the post and advances the topic, category, and author
	// last-post bookkeeping atomically.
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Post, error)
	ListByTopic(ctx context.Context, filter PostFilter) ([]*models.Post, int64, error)
	// SoftDelete hides the post without touching counters. Idempotent: a
	// second delete of the same row reports not found.
	SoftDelete(ctx context.Context, id uint, deletedByID uint) error
	Restore(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	var categoryID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// attachments ride along on the insert via the has-many association
		if err := tx.Omit("Topic", "User").Create(post).Error; err != nil {
			return err
		}
		now := post.CreatedAt
		if err := tx.Model(&models.Topic{}).Where("id = ?", post.TopicID).
			Update("last_post_at", now).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Topic{}).Select("category_id").
			Where("id = ?", post.TopicID).Scan(&categoryID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).
			Updates(map[string]interface{}{
				"post_count":   gorm.Expr("post_count + ?", 1),
				"last_post_id": post.ID,
				"last_post_at": now,
			}).Error; err != nil {
			return err
		}
		return applyStatsDelta(tx, post.UserID, statsDelta{PostCount: 1, LastPostAt: &now})
	})
	if err != nil {
		return err
	}
	cache.InvalidateTopic(ctx, post.TopicID)
	cache.InvalidateCategory(ctx, categoryID)
	cache.InvalidateUserStats(ctx, post.UserID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Post, error) {
	var post models.Post
	db := r.db.WithContext(ctx).
		Select(postReplyCountSelect).
		Preload("User").
		Preload("Attachments")
	if !includeDeleted {
		db = db.Where("is_deleted = ?", false)
	}
	if err := db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByTopic(ctx context.Context, filter PostFilter) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("topic_id = ?", filter.TopicID)
	if filter.UserID != 0 {
		base = base.Where("user_id = ?", filter.UserID)
	}
	if !filter.IncludeDeleted {
		base = base.Where("is_deleted = ?", false)
	}

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := query.Paginate(base.Select(postReplyCountSelect), filter.Page, postSort).
		Preload("User").
		Preload("Attachments").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id uint, deletedByID uint) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted":    true,
			"deleted_at":    now,
			"deleted_by_id": deletedByID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) Restore(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{
			"is_deleted":    false,
			"deleted_at":    nil,
			"deleted_by_id": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
