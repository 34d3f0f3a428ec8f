package models

import (
	"time"

	"gorm.io/gorm"
)

// Reply is a flat response to a post. Replies never nest: they always attach
// to a post, not to another reply.
type Reply struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	Post    *Post  `gorm:"foreignKey:PostID" json:"post,omitempty"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Content string `gorm:"type:text;not null" json:"content"`

	EditCount  int        `gorm:"not null;default:0" json:"edit_count"`
	LastEditAt *time.Time `json:"last_edit_at,omitempty"`
	IsEdited   bool       `gorm:"-" json:"is_edited"`

	Score int64 `gorm:"not null;default:0" json:"score"`

	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	DeletedByID *uint      `json:"deleted_by_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AfterFind derives the edited flag.
func (r *Reply) AfterFind(_ *gorm.DB) error {
	r.IsEdited = r.EditCount > 0
	return nil
}
