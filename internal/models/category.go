package models

import "time"

// Category is a top-level grouping of topics. Categories are never hard
// deleted; deactivation hides them from public listings while keeping the
// topic tree intact.
type Category struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:120;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Slug         string `gorm:"size:140;not null;uniqueIndex" json:"slug"`
	DisplayOrder int    `gorm:"not null;default:0;index" json:"display_order"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	// Denormalized counters, maintained transactionally by the thread engine.
	// Recomputable from topics/posts via stats.Recompute.
	TopicCount int64      `gorm:"not null;default:0" json:"topic_count"`
	PostCount  int64      `gorm:"not null;default:0" json:"post_count"`
	LastPostID *uint      `json:"last_post_id,omitempty"`
	LastPostAt *time.Time `json:"last_post_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
