package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is the top-level content unit within a topic.
//
// Soft deletion is explicit (IsDeleted + DeletedAt/DeletedByID) rather than
// gorm.DeletedAt so moderator-scoped queries can still read deleted rows
// without Unscoped gymnastics. Counters are never decremented on soft delete;
// only visibility is filtered at query time.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	TopicID uint   `gorm:"not null;index" json:"topic_id"`
	Topic   *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Content string `gorm:"type:text;not null" json:"content"`

	EditCount  int        `gorm:"not null;default:0" json:"edit_count"`
	LastEditAt *time.Time `json:"last_edit_at,omitempty"`
	// IsEdited is derived from EditCount, never persisted.
	IsEdited bool `gorm:"-" json:"is_edited"`

	Score int64 `gorm:"not null;default:0" json:"score"`

	// At most one post per topic carries IsAnswer; enforced by the thread
	// engine inside the MarkAnswer transaction, not by schema.
	IsAnswer     bool       `gorm:"not null;default:false;index" json:"is_answer"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
	AnsweredByID *uint      `json:"answered_by_id,omitempty"`

	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	DeletedByID *uint      `json:"deleted_by_id,omitempty"`

	Attachments []Attachment `gorm:"foreignKey:PostID" json:"attachments,omitempty"`

	// ReplyCount is not persisted; computed at query time.
	ReplyCount int64 `gorm:"->;-:migration" json:"reply_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AfterFind derives the edited flag.
func (p *Post) AfterFind(_ *gorm.DB) error {
	p.IsEdited = p.EditCount > 0
	return nil
}
