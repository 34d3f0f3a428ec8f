package repository

import (
	"context"
	"testing"

	"quorum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagGetOrCreateByNamesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTagRepository(db)

	first, err := repo.GetOrCreateByNames(ctx, []string{"golang", "databases"})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := repo.GetOrCreateByNames(ctx, []string{"golang", "testing"})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID, "existing tags are reused, not duplicated")

	var total int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&total).Error)
	assert.Equal(t, int64(3), total)
}

func TestTagListNameFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTagRepository(db)

	_, err := repo.GetOrCreateByNames(ctx, []string{"networking", "kernel", "net-tools"})
	require.NoError(t, err)

	tags, count, err := repo.List(ctx, "net", queryPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, tags, 2)
}

func TestTagDeleteDetachesTopics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTagRepository(db)
	topics := NewTopicRepository(db)

	user := seedUser(t, db)
	category := seedCategory(t, db)
	topic := seedTopic(t, db, category.ID, user.ID)

	tags, err := repo.GetOrCreateByNames(ctx, []string{"ephemeral"})
	require.NoError(t, err)
	require.NoError(t, topics.SetTags(ctx, topic, tags))

	require.NoError(t, repo.Delete(ctx, tags[0].ID))

	fetched, err := topics.GetByID(ctx, topic.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Tags)

	_, err = repo.GetByID(ctx, tags[0].ID)
	assert.Error(t, err)
}
