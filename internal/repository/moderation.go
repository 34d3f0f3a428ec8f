package repository

import (
	"context"
	"time"

	"quorum/internal/models"
	"quorum/internal/observability"
	"quorum/internal/query"

	"gorm.io/gorm"
)

// ModerationFilter holds list filters for moderation log entries.
type ModerationFilter struct {
	ActionType   models.ModerationAction
	ModeratorID  uint
	TargetUserID uint
	Page         query.PageRequest
}

var moderationSort = query.Sortable{
	Columns: map[string]string{
		"createdAt": "created_at",
	},
	Default: "created_at desc",
}

// ModerationRepository owns the append-only moderation log. Entries are
// never updated or deleted once written.
type ModerationRepository interface {
	Record(ctx context.Context, entry *models.ModerationLogEntry) error
	// RecordContentRemoval writes the log entry and soft-deletes the
	// target post or reply in one transaction.
	RecordContentRemoval(ctx context.Context, entry *models.ModerationLogEntry, kind models.ContentKind, contentID uint) error
	// RecordBan writes the log entry and flips the user's banned flag in
	// one transaction.
	RecordBan(ctx context.Context, entry *models.ModerationLogEntry, targetUserID uint, banned bool) error
	List(ctx context.Context, filter ModerationFilter) ([]*models.ModerationLogEntry, int64, error)
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new ModerationRepository
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) Record(ctx context.Context, entry *models.ModerationLogEntry) error {
	if err := r.db.WithContext(ctx).Omit("Moderator").Create(entry).Error; err != nil {
		return err
	}
	observability.ModerationActions.WithLabelValues(string(entry.ActionType)).Inc()
	return nil
}

func (r *moderationRepository) RecordContentRemoval(ctx context.Context, entry *models.ModerationLogEntry, kind models.ContentKind, contentID uint) error {
	now := time.Now().UTC()
	deletion := map[string]interface{}{
		"is_deleted":    true,
		"deleted_at":    now,
		"deleted_by_id": entry.ModeratorID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res *gorm.DB
		if kind == models.ContentKindPost {
			res = tx.Model(&models.Post{}).
				Where("id = ? AND is_deleted = ?", contentID, false).
				Updates(deletion)
		} else {
			res = tx.Model(&models.Reply{}).
				Where("id = ? AND is_deleted = ?", contentID, false).
				Updates(deletion)
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Omit("Moderator").Create(entry).Error
	})
	if err != nil {
		return err
	}
	observability.ModerationActions.WithLabelValues(string(entry.ActionType)).Inc()
	return nil
}

func (r *moderationRepository) RecordBan(ctx context.Context, entry *models.ModerationLogEntry, targetUserID uint, banned bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", targetUserID).Update("is_banned", banned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Omit("Moderator").Create(entry).Error
	})
	if err != nil {
		return err
	}
	observability.ModerationActions.WithLabelValues(string(entry.ActionType)).Inc()
	return nil
}

func (r *moderationRepository) List(ctx context.Context, filter ModerationFilter) ([]*models.ModerationLogEntry, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ModerationLogEntry{})
	if filter.ActionType != "" {
		base = base.Where("action_type = ?", filter.ActionType)
	}
	if filter.ModeratorID != 0 {
		base = base.Where("moderator_id = ?", filter.ModeratorID)
	}
	if filter.TargetUserID != 0 {
		base = base.Where("target_user_id = ?", filter.TargetUserID)
	}

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var entries []*models.ModerationLogEntry
	err := query.Paginate(base, filter.Page, moderationSort).
		Preload("Moderator").
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}
