package models

import "time"

// TopicStatus defines the lifecycle state of a topic.
type TopicStatus string

const (
	// TopicStatusOpen accepts new posts.
	TopicStatusOpen TopicStatus = "open"
	// TopicStatusClosed blocks new posts but can be reopened by a moderator.
	TopicStatusClosed TopicStatus = "closed"
	// TopicStatusArchived is terminal; no further mutation is permitted.
	TopicStatusArchived TopicStatus = "archived"
)

// Topic is the root of a discussion thread within a category. Its content
// field holds the body of the opening post.
type Topic struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:300;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`

	Status   TopicStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	IsPinned bool        `gorm:"not null;default:false" json:"is_pinned"`
	IsLocked bool        `gorm:"not null;default:false" json:"is_locked"`

	ViewCount  int64      `gorm:"not null;default:0" json:"view_count"`
	Score      int64      `gorm:"not null;default:0" json:"score"`
	LastPostAt *time.Time `json:"last_post_at,omitempty"`

	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	ClosedByID *uint      `json:"closed_by_id,omitempty"`

	// Set by MarkAnswer alongside the answering post's IsAnswer flag.
	AnsweredPostID *uint      `json:"answered_post_id,omitempty"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
	AnsweredByID   *uint      `json:"answered_by_id,omitempty"`

	Tags []Tag `gorm:"many2many:topic_tags" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanTransitionTo reports whether the status lattice permits moving to next.
// Open and Closed convert freely between each other and into Archived;
// Archived is terminal.
func (t *Topic) CanTransitionTo(next TopicStatus) bool {
	if t.Status == TopicStatusArchived {
		return false
	}
	switch next {
	case TopicStatusOpen:
		return t.Status == TopicStatusClosed
	case TopicStatusClosed:
		return t.Status == TopicStatusOpen
	case TopicStatusArchived:
		return true
	}
	return false
}
