package repository

import (
	"fmt"
	"strings"
	"testing"

	"quorum/internal/database"
	"quorum/internal/models"
	"quorum/internal/query"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory sqlite database. The shared-cache
// DSN keyed on the test name keeps pooled connections on the same database
// while isolating tests from each other.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func queryPage(page, perPage int) query.PageRequest {
	return query.PageRequest{Page: page, PerPage: perPage}
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Username:    gofakeit.Username() + gofakeit.DigitN(4),
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
		Role:        models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedModerator(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	mod := seedUser(t, db)
	require.NoError(t, db.Model(mod).Update("role", models.RoleModerator).Error)
	mod.Role = models.RoleModerator
	return mod
}

func seedCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	name := gofakeit.BuzzWord() + " " + gofakeit.DigitN(5)
	category := &models.Category{
		Name:        name,
		Slug:        strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Description: gofakeit.Sentence(8),
		IsActive:    true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedTopic(t *testing.T, db *gorm.DB, categoryID, userID uint) *models.Topic {
	t.Helper()
	topic := &models.Topic{
		Title:      gofakeit.Sentence(5),
		Content:    gofakeit.Paragraph(1, 3, 10, " "),
		CategoryID: categoryID,
		UserID:     userID,
		Status:     models.TopicStatusOpen,
	}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

func seedPost(t *testing.T, db *gorm.DB, topicID, userID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		TopicID: topicID,
		UserID:  userID,
		Content: gofakeit.Paragraph(1, 2, 8, " "),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedReply(t *testing.T, db *gorm.DB, postID, userID uint) *models.Reply {
	t.Helper()
	reply := &models.Reply{
		PostID:  postID,
		UserID:  userID,
		Content: gofakeit.Sentence(10),
	}
	require.NoError(t, db.Create(reply).Error)
	return reply
}
