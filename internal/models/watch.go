package models

import "time"

// TopicWatch is a per-user subscription to a topic. Pure set membership:
// no counters hang off it, and the thread engine never reads it. It exists
// to drive notification fan-out in the external notification service.
type TopicWatch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_topic_watch_user_topic" json:"user_id"`
	TopicID   uint      `gorm:"not null;uniqueIndex:idx_topic_watch_user_topic" json:"topic_id"`
	CreatedAt time.Time `json:"created_at"`
}
