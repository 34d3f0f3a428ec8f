package models

import "time"

// ModerationAction is the kind of action recorded in the moderation log.
type ModerationAction string

const (
	ActionDeleteReview  ModerationAction = "delete_review"
	ActionDeleteComment ModerationAction = "delete_comment"
	ActionBanUser       ModerationAction = "ban_user"
	ActionUnbanUser     ModerationAction = "unban_user"
	ActionWarnUser      ModerationAction = "warn_user"
)

// ValidModerationAction reports whether a names a supported action kind.
func ValidModerationAction(a ModerationAction) bool {
	switch a {
	case ActionDeleteReview, ActionDeleteComment, ActionBanUser, ActionUnbanUser, ActionWarnUser:
		return true
	}
	return false
}

// ModerationLogEntry is one append-only record of a moderator action.
// Entries are immutable once written. The ban/warn side effects on the user
// entity itself belong to the external user service; only the audit record
// lives here.
type ModerationLogEntry struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ActionType  ModerationAction `gorm:"type:varchar(30);not null;index" json:"action_type"`
	ModeratorID uint             `gorm:"not null;index" json:"moderator_id"`
	Moderator   User             `gorm:"foreignKey:ModeratorID" json:"moderator"`

	TargetUserID *uint        `gorm:"index" json:"target_user_id,omitempty"`
	TargetKind   *ContentKind `gorm:"type:varchar(10)" json:"target_kind,omitempty"`
	TargetID     *uint        `json:"target_id,omitempty"`

	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
