package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quorum/internal/database"
	"quorum/internal/models"
)

func setupSeedDB(t *testing.T) *gorm.DB {
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
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestCategories_Idempotent(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Categories(db))
	require.NoError(t, Categories(db))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(BuiltInCategories)), count)

	var general models.Category
	require.NoError(t, db.Where("slug = ?", "general").First(&general).Error)
	assert.Equal(t, "General Discussion", general.Name)
	assert.True(t, general.IsActive)
}

func TestSeed_SmallRun(t *testing.T) {
	db := setupSeedDB(t)
	ctx := context.Background()

	err := Seed(ctx, db, Options{NumUsers: 5, NumTopics: 4, PostsPerTopic: 2})
	require.NoError(t, err)

	var userCount, topicCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Topic{}).Count(&topicCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)

	assert.Equal(t, int64(5), userCount)
	assert.Equal(t, int64(4), topicCount)
	assert.GreaterOrEqual(t, postCount, topicCount, "every topic gets at least one post")

	// the fixed dev identities exist and carry the intended roles
	var mod models.User
	require.NoError(t, db.Where("username = ?", "mod").First(&mod).Error)
	assert.True(t, mod.IsModerator())

	// category counters were maintained by the repository writes
	var categorized int64
	require.NoError(t, db.Model(&models.Category{}).Where("topic_count > 0").Count(&categorized).Error)
	assert.Greater(t, categorized, int64(0))

	var trackedTopics int64
	row := db.Model(&models.Category{}).Select("COALESCE(SUM(topic_count), 0)")
	require.NoError(t, row.Scan(&trackedTopics).Error)
	assert.Equal(t, topicCount, trackedTopics)
}

func TestFactory_CreateUserOverrides(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser(func(u *models.User) {
		u.Username = "fixed"
		u.Email = "fixed@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed", user.Username)
	assert.NotZero(t, user.ID)

	mod, err := f.CreateModerator()
	require.NoError(t, err)
	assert.True(t, mod.IsModerator())
}
