package models

import "time"

// ForumUserStats is a per-user materialized rollup of forum activity. It is
// a cache, not a source of truth: every field is recomputable by replaying
// the underlying rows (see the stats repository's Recompute).
type ForumUserStats struct {
	UserID          uint       `gorm:"primaryKey" json:"user_id"`
	TopicCount      int64      `gorm:"not null;default:0" json:"topic_count"`
	PostCount       int64      `gorm:"not null;default:0" json:"post_count"`
	ReplyCount      int64      `gorm:"not null;default:0" json:"reply_count"`
	UpvotesReceived int64      `gorm:"not null;default:0" json:"upvotes_received"`
	Reputation      int64      `gorm:"not null;default:0" json:"reputation"`
	LastPostAt      *time.Time `json:"last_post_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ForumUserStats) TableName() string {
	return "forum_user_stats"
}
