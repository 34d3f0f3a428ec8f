package database

import "quorum/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Topic{},
		&models.Post{},
		&models.Reply{},
		&models.Attachment{},
		&models.Vote{},
		&models.EditHistoryEntry{},
		&models.ModerationLogEntry{},
		&models.ReportedContent{},
		&models.Tag{},
		&models.ForumUserStats{},
		&models.TopicWatch{},
	}
}
