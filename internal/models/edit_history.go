package models

import "time"

// ContentKind distinguishes which table an edit-history row belongs to.
type ContentKind string

const (
	ContentKindPost  ContentKind = "post"
	ContentKindReply ContentKind = "reply"
)

// EditHistoryEntry is an immutable snapshot of content as it was before an
// edit. Rows are append-only: never rewritten, reordered, or pruned.
type EditHistoryEntry struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ContentKind ContentKind `gorm:"type:varchar(10);not null;index:idx_edit_history_content" json:"content_kind"`
	ContentID   uint        `gorm:"not null;index:idx_edit_history_content" json:"content_id"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	EditorID    uint        `gorm:"not null" json:"editor_id"`
	Editor      User        `gorm:"foreignKey:EditorID" json:"editor"`
	EditedAt    time.Time   `gorm:"not null" json:"edited_at"`
	CreatedAt   time.Time   `json:"created_at"`
}
