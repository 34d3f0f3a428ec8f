// Package models contains data structures for the application's domain models.
package models

import "time"

// Role values for User.Role.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a forum member. Credentials and sessions are owned by the
// external auth service; this row only carries the identity the forum needs
// for authorship and moderation references.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:60;not null;uniqueIndex" json:"username"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	DisplayName string    `gorm:"size:120" json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsBanned    bool      `gorm:"not null;default:false" json:"is_banned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsModerator reports whether the user can perform moderation actions.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
