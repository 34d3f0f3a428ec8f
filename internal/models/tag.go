package models

import "time"

// Tag is a label attachable to topics, many-to-many via topic_tags.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:60;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Color       string    `gorm:"size:7" json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
