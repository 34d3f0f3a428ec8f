package models

import "time"

// Attachment is file metadata attached to a post. Storage and serving of the
// underlying bytes belong to the media service; the forum keeps the pointer.
type Attachment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	FileName string `gorm:"size:255;not null" json:"file_name"`
	URL      string `gorm:"not null" json:"url"`
	Size     int64  `gorm:"not null;default:0" json:"size"`
	MimeType string `gorm:"size:100" json:"mime_type"`
	IsPublic bool   `gorm:"not null;default:true" json:"is_public"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
