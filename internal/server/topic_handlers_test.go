package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/models"
)

func TestCreateTopicEndpoint(t *testing.T) {
	db := setupHandlerTestDB(t)
	user := seedHandlerUser(t, db, "author", models.RoleUser)
	category := seedHandlerCategory(t, db)
	app := newTestApp(t, db, user.ID, user.Role)

	resp := postJSON(t, app, "/api/topics", map[string]any{
		"category_id": category.ID,
		"title":       "Does the scheduler preempt long syscalls?",
		"content":     "Seeing odd latency spikes under load.",
		"tags":        []string{"go", "performance"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var topic models.Topic
	decodeBody(t, resp, &topic)
	assert.NotZero(t, topic.ID)
	assert.Equal(t, user.ID, topic.UserID)
	assert.Equal(t, models.TopicStatusOpen, topic.Status)

	// category counter bumped by the repository transaction
	var reloaded models.Category
	require.NoError(t, db.First(&reloaded, category.ID).Error)
	assert.Equal(t, int64(1), reloaded.TopicCount)
}

func TestCreateTopicEndpoint_Validation(t *testing.T) {
	db := setupHandlerTestDB(t)
	user := seedHandlerUser(t, db, "author", models.RoleUser)
	category := seedHandlerCategory(t, db)
	app := newTestApp(t, db, user.ID, user.Role)

	resp := postJSON(t, app, "/api/topics", map[string]any{
		"category_id": category.ID,
		"title":       "",
		"content":     "body",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, app, "/api/topics", map[string]any{
		"category_id": 999,
		"title":       "orphan",
		"content":     "body",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestTransitionTopicEndpoint_Permissions(t *testing.T) {
	db := setupHandlerTestDB(t)
	author := seedHandlerUser(t, db, "author", models.RoleUser)
	stranger := seedHandlerUser(t, db, "stranger", models.RoleUser)
	category := seedHandlerCategory(t, db)

	topic := &models.Topic{
		Title: "t", Content: "c",
		CategoryID: category.ID, UserID: author.ID,
		Status: models.TopicStatusOpen,
	}
	require.NoError(t, db.Create(topic).Error)

	strangerApp := newTestApp(t, db, stranger.ID, stranger.Role)
	resp := postJSON(t, strangerApp, "/api/topics/1/status", map[string]any{"status": "closed"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// the author may close their own topic
	authorApp := newTestApp(t, db, author.ID, author.Role)
	resp = postJSON(t, authorApp, "/api/topics/1/status", map[string]any{"status": "closed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var closed models.Topic
	decodeBody(t, resp, &closed)
	assert.Equal(t, models.TopicStatusClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)

	// but only a moderator may reopen it
	resp = postJSON(t, authorApp, "/api/topics/1/status", map[string]any{"status": "open"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	mod := seedHandlerUser(t, db, "mod", models.RoleModerator)
	modApp := newTestApp(t, db, mod.ID, mod.Role)
	resp = postJSON(t, modApp, "/api/topics/1/status", map[string]any{"status": "open"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reopened models.Topic
	decodeBody(t, resp, &reopened)
	assert.Equal(t, models.TopicStatusOpen, reopened.Status)
}

func TestGetTopicEndpoint_NotFound(t *testing.T) {
	db := setupHandlerTestDB(t)
	app := newTestApp(t, db, 0, "")

	resp := doJSON(t, app, http.MethodGet, "/api/topics/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/topics/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestListTopicsEndpoint_Pagination(t *testing.T) {
	db := setupHandlerTestDB(t)
	user := seedHandlerUser(t, db, "author", models.RoleUser)
	category := seedHandlerCategory(t, db)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Topic{
			Title: "t", Content: "c",
			CategoryID: category.ID, UserID: user.ID,
			Status: models.TopicStatusOpen,
		}).Error)
	}

	app := newTestApp(t, db, 0, "")
	resp := doJSON(t, app, http.MethodGet, "/api/topics?page=1&perPage=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Items []models.Topic `json:"items"`
		Count int64          `json:"count"`
	}
	decodeBody(t, resp, &page)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Count)
}
