package repository

import (
	"context"
	"time"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// ReplyFilter holds list filters for replies under a post.
type ReplyFilter struct {
	PostID         uint
	UserID         uint
	IncludeDeleted bool
	Page           query.PageRequest
}

var replySort = query.Sortable{
	Columns: map[string]string{
		"createdAt": "created_at",
		"score":     "score",
	},
	Default: "created_at asc",
}

// ReplyRepository defines the interface for reply data operations.
type ReplyRepository interface {
	// Create inserts the reply and bumps the author's reply count. When
	// touchThread is set, the owning topic's last-post timestamp advances
	// too; by default replies leave thread recency alone.
	Create(ctx context.Context, reply *models.Reply, touchThread bool) error
	GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Reply, error)
	ListByPost(ctx context.Context, filter ReplyFilter) ([]*models.Reply, int64, error)
	SoftDelete(ctx context.Context, id uint, deletedByID uint) error
	Restore(ctx context.Context, id uint) error
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply, touchThread bool) error {
	var topicID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Post", "User").Create(reply).Error; err != nil {
			return err
		}
		if touchThread {
			if err := tx.Model(&models.Post{}).Select("topic_id").
				Where("id = ?", reply.PostID).Scan(&topicID).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Topic{}).Where("id = ?", topicID).
				Update("last_post_at", reply.CreatedAt).Error; err != nil {
				return err
			}
		}
		return applyStatsDelta(tx, reply.UserID, statsDelta{ReplyCount: 1})
	})
	if err != nil {
		return err
	}
	if topicID != 0 {
		cache.InvalidateTopic(ctx, topicID)
	}
	cache.InvalidateUserStats(ctx, reply.UserID)
	return nil
}

func (r *replyRepository) GetByID(ctx context.Context, id uint, includeDeleted bool) (*models.Reply, error) {
	var reply models.Reply
	db := r.db.WithContext(ctx).Preload("User")
	if !includeDeleted {
		db = db.Where("is_deleted = ?", false)
	}
	if err := db.First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) ListByPost(ctx context.Context, filter ReplyFilter) ([]*models.Reply, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Reply{}).Where("post_id = ?", filter.PostID)
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

	var replies []*models.Reply
	err := query.Paginate(base, filter.Page, replySort).
		Preload("User").
		Find(&replies).Error
	if err != nil {
		return nil, 0, err
	}
	return replies, count, nil
}

func (r *replyRepository) SoftDelete(ctx context.Context, id uint, deletedByID uint) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Reply{}).
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

func (r *replyRepository) Restore(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Reply{}).
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
