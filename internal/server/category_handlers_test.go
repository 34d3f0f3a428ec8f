package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quorum/internal/models"
)

func TestCategoryEndpoints(t *testing.T) {
	db := setupHandlerTestDB(t)
	mod := seedHandlerUser(t, db, "mod", models.RoleModerator)
	app := newTestApp(t, db, mod.ID, mod.Role)

	resp := postJSON(t, app, "/api/mod/categories", map[string]any{
		"name":        "Show & Tell",
		"description": "Projects and demos.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var category models.Category
	decodeBody(t, resp, &category)
	assert.Equal(t, "show-tell", category.Slug)
	assert.True(t, category.IsActive)

	// duplicate slug conflicts
	resp = postJSON(t, app, "/api/mod/categories", map[string]any{"name": "Show & Tell"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/categories/slug/show-tell", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bySlug models.Category
	decodeBody(t, resp, &bySlug)
	assert.Equal(t, category.ID, bySlug.ID)
}

func TestListCategories_DeactivatedHiddenFromPublic(t *testing.T) {
	db := setupHandlerTestDB(t)
	mod := seedHandlerUser(t, db, "mod", models.RoleModerator)

	require.NoError(t, db.Create(&models.Category{Name: "Visible", Slug: "visible", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Hidden", Slug: "hidden", IsActive: false}).Error)

	type pageResp struct {
		Items []models.Category `json:"items"`
		Count int64             `json:"count"`
	}

	publicApp := newTestApp(t, db, 0, "")
	resp := doJSON(t, publicApp, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var publicPage pageResp
	decodeBody(t, resp, &publicPage)
	assert.Equal(t, int64(1), publicPage.Count)

	modApp := newTestApp(t, db, mod.ID, mod.Role)
	resp = doJSON(t, modApp, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var modPage pageResp
	decodeBody(t, resp, &modPage)
	assert.Equal(t, int64(2), modPage.Count)
}
