package repository

import (
	"context"
	"time"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/observability"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// TopicFilter holds list filters for topics.
type TopicFilter struct {
	CategoryID uint
	UserID     uint
	Status     models.TopicStatus
	Title      string
	TagID      uint
	Page       query.PageRequest
}

// Pinned topics float above the sort order regardless of the requested key.
var topicSort = query.Sortable{
	Columns: map[string]string{
		"createdAt":  "created_at",
		"lastPostAt": "last_post_at",
		"viewCount":  "view_count",
		"score":      "score",
		"title":      "title",
	},
	Default: "created_at desc",
}

// TopicRepository defines the interface for topic data operations. Creation
// and answer marking are multi-row units of work and run inside a single
// transaction here rather than in the service layer.
type TopicRepository interface {
	// Create inserts the topic and bumps the category and author counters
	// atomically.
	Create(ctx context.Context, topic *models.Topic) error
	GetByID(ctx context.Context, id uint) (*models.Topic, error)
	List(ctx context.Context, filter TopicFilter) ([]*models.Topic, int64, error)
	// UpdateContent persists edits to title/content only.
	UpdateContent(ctx context.Context, id uint, title, content string) error
	// SetStatus applies a lifecycle transition that CanTransitionTo has
	// already approved. Closing records who and when; reopening clears both.
	SetStatus(ctx context.Context, topic *models.Topic, next models.TopicStatus, actorID uint) error
	SetPinned(ctx context.Context, id uint, pinned bool) error
	SetLocked(ctx context.Context, id uint, locked bool) error
	// MarkAnswer sets postID as the topic's single accepted answer,
	// clearing any previously marked post in the same transaction.
	MarkAnswer(ctx context.Context, topic *models.Topic, postID uint, actorID uint) error
	UnmarkAnswer(ctx context.Context, topic *models.Topic) error
	// IncrementViewCount is fire-and-forget; a lost bump is acceptable.
	IncrementViewCount(ctx context.Context, id uint) error
	SetTags(ctx context.Context, topic *models.Topic, tags []models.Tag) error
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "User", "Tags").Create(topic).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Where("id = ?", topic.CategoryID).
			Update("topic_count", gorm.Expr("topic_count + ?", 1)).Error; err != nil {
			return err
		}
		return applyStatsDelta(tx, topic.UserID, statsDelta{TopicCount: 1})
	})
	if err != nil {
		return err
	}
	cache.InvalidateCategory(ctx, topic.CategoryID)
	cache.InvalidateUserStats(ctx, topic.UserID)
	return nil
}

func (r *topicRepository) GetByID(ctx context.Context, id uint) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		Preload("Tags").
		First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) List(ctx context.Context, filter TopicFilter) ([]*models.Topic, int64, error) {
	defer observability.TrackQuery("list", "topics")()

	base := r.db.WithContext(ctx).Model(&models.Topic{})
	if filter.CategoryID != 0 {
		base = base.Where("category_id = ?", filter.CategoryID)
	}
	if filter.UserID != 0 {
		base = base.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		base = base.Where("status = ?", filter.Status)
	}
	if filter.TagID != 0 {
		base = base.Where("id IN (SELECT topic_id FROM topic_tags WHERE tag_id = ?)", filter.TagID)
	}
	base = query.ILike(base, "title", filter.Title)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var topics []*models.Topic
	err := base.
		Preload("User").
		Preload("Tags").
		Order("is_pinned DESC").
		Order(topicSort.Order(filter.Page)).
		Limit(filter.Page.Normalize().PerPage).
		Offset(filter.Page.Offset()).
		Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}
	return topics, count, nil
}

func (r *topicRepository) UpdateContent(ctx context.Context, id uint, title, content string) error {
	err := r.db.WithContext(ctx).Model(&models.Topic{}).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content}).Error
	if err == nil {
		cache.InvalidateTopic(ctx, id)
	}
	return err
}

func (r *topicRepository) SetStatus(ctx context.Context, topic *models.Topic, next models.TopicStatus, actorID uint) error {
	updates := map[string]interface{}{"status": next}
	switch next {
	case models.TopicStatusClosed, models.TopicStatusArchived:
		now := time.Now().UTC()
		updates["closed_at"] = now
		updates["closed_by_id"] = actorID
	case models.TopicStatusOpen:
		updates["closed_at"] = nil
		updates["closed_by_id"] = nil
	}

	// guard on the current status so two racing transitions cannot both win
	res := r.db.WithContext(ctx).Model(&models.Topic{}).
		Where("id = ? AND status = ?", topic.ID, topic.Status).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	topic.Status = next
	cache.InvalidateTopic(ctx, topic.ID)
	return nil
}

func (r *topicRepository) SetPinned(ctx context.Context, id uint, pinned bool) error {
	err := r.db.WithContext(ctx).Model(&models.Topic{}).Where("id = ?", id).
		Update("is_pinned", pinned).Error
	if err == nil {
		cache.InvalidateTopic(ctx, id)
	}
	return err
}

func (r *topicRepository) SetLocked(ctx context.Context, id uint, locked bool) error {
	err := r.db.WithContext(ctx).Model(&models.Topic{}).Where("id = ?", id).
		Update("is_locked", locked).Error
	if err == nil {
		cache.InvalidateTopic(ctx, id)
	}
	return err
}

func (r *topicRepository) MarkAnswer(ctx context.Context, topic *models.Topic, postID uint, actorID uint) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// clear any prior answer first so at most one row ever carries the flag
		if err := tx.Model(&models.Post{}).
			Where("topic_id = ? AND is_answer = ?", topic.ID, true).
			Updates(map[string]interface{}{"is_answer": false, "answered_at": nil, "answered_by_id": nil}).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Post{}).
			Where("id = ? AND topic_id = ? AND is_deleted = ?", postID, topic.ID, false).
			Updates(map[string]interface{}{"is_answer": true, "answered_at": now, "answered_by_id": actorID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Topic{}).Where("id = ?", topic.ID).
			Updates(map[string]interface{}{"answered_post_id": postID, "answered_at": now, "answered_by_id": actorID}).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateTopic(ctx, topic.ID)
	return nil
}

func (r *topicRepository) UnmarkAnswer(ctx context.Context, topic *models.Topic) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("topic_id = ? AND is_answer = ?", topic.ID, true).
			Updates(map[string]interface{}{"is_answer": false, "answered_at": nil, "answered_by_id": nil}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Topic{}).Where("id = ?", topic.ID).
			Updates(map[string]interface{}{"answered_post_id": nil, "answered_at": nil, "answered_by_id": nil}).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateTopic(ctx, topic.ID)
	return nil
}

func (r *topicRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Topic{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *topicRepository) SetTags(ctx context.Context, topic *models.Topic, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Model(topic).Association("Tags").Replace(tags)
	if err == nil {
		cache.InvalidateTopic(ctx, topic.ID)
	}
	return err
}
