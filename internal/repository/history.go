package repository

import (
	"context"
	"time"

	"quorum/internal/cache"
	"quorum/internal/models"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// EditHistoryRepository owns the append-only edit trail. RecordEdit is the
// only write path for post/reply content changes: the snapshot of the prior
// content and the in-place update commit or roll back together, so the
// trail can never miss a revision.
type EditHistoryRepository interface {
	// RecordEdit snapshots the current content of the target, then applies
	// newContent and advances the edit counter. Returns the written entry.
	RecordEdit(ctx context.Context, kind models.ContentKind, contentID uint, newContent string, editorID uint) (*models.EditHistoryEntry, error)
	// ListForContent returns the trail oldest-first.
	ListForContent(ctx context.Context, kind models.ContentKind, contentID uint, page query.PageRequest) ([]*models.EditHistoryEntry, int64, error)
}

type editHistoryRepository struct {
	db *gorm.DB
}

// NewEditHistoryRepository creates a new EditHistoryRepository
func NewEditHistoryRepository(db *gorm.DB) EditHistoryRepository {
	return &editHistoryRepository{db: db}
}

func (r *editHistoryRepository) RecordEdit(ctx context.Context, kind models.ContentKind, contentID uint, newContent string, editorID uint) (*models.EditHistoryEntry, error) {
	now := time.Now().UTC()
	entry := &models.EditHistoryEntry{
		ContentKind: kind,
		ContentID:   contentID,
		EditorID:    editorID,
		EditedAt:    now,
	}
	var topicID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch kind {
		case models.ContentKindPost:
			var post models.Post
			if err := tx.Where("is_deleted = ?", false).First(&post, contentID).Error; err != nil {
				return err
			}
			entry.Content = post.Content
			topicID = post.TopicID
		case models.ContentKindReply:
			var reply models.Reply
			if err := tx.Where("is_deleted = ?", false).First(&reply, contentID).Error; err != nil {
				return err
			}
			entry.Content = reply.Content
		default:
			return gorm.ErrRecordNotFound
		}

		if err := tx.Omit("Editor").Create(entry).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"content":      newContent,
			"edit_count":   gorm.Expr("edit_count + ?", 1),
			"last_edit_at": now,
		}
		if kind == models.ContentKindPost {
			return tx.Model(&models.Post{}).Where("id = ?", contentID).Updates(updates).Error
		}
		return tx.Model(&models.Reply{}).Where("id = ?", contentID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if topicID != 0 {
		cache.InvalidateTopic(ctx, topicID)
	}
	return entry, nil
}

func (r *editHistoryRepository) ListForContent(ctx context.Context, kind models.ContentKind, contentID uint, page query.PageRequest) ([]*models.EditHistoryEntry, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.EditHistoryEntry{}).
		Where("content_kind = ? AND content_id = ?", kind, contentID)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	// the trail reads oldest-first regardless of requested sort
	var entries []*models.EditHistoryEntry
	p := page.Normalize()
	err := base.Preload("Editor").
		Order("edited_at asc, id asc").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}
