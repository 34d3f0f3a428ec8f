package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quorum/internal/config"
	"quorum/internal/database"
	"quorum/internal/models"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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

// newTestApp builds a fiber app over a real server with an sqlite store and
// fake identity middleware in place of JWT parsing.
func newTestApp(t *testing.T, db *gorm.DB, userID uint, role string) *fiber.App {
	t.Helper()

	cfg := &config.Config{Env: "test", JWTSecret: "test-secret"}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("userID", userID)
			c.Locals("userRole", role)
		}
		return c.Next()
	})
	registerTestRoutes(app, srv)
	return app
}

// registerTestRoutes mounts the API without the auth middleware; the fake
// identity middleware in newTestApp stands in for it.
func registerTestRoutes(app *fiber.App, s *Server) {
	api := app.Group("/api")

	api.Get("/categories", s.ListCategories)
	api.Get("/categories/slug/:slug", s.GetCategoryBySlug)
	api.Get("/categories/:id", s.GetCategory)
	api.Post("/mod/categories", s.CreateCategory)
	api.Post("/mod/categories/:id/deactivate", s.DeactivateCategory)

	api.Get("/topics", s.ListTopics)
	api.Get("/topics/:id", s.GetTopic)
	api.Post("/topics", s.CreateTopic)
	api.Post("/topics/:id/status", s.TransitionTopic)
	api.Post("/topics/:id/posts", s.CreatePost)
	api.Get("/topics/:id/posts", s.ListPosts)
	api.Post("/topics/:id/watch", s.WatchTopic)
	api.Get("/topics/:id/watch", s.GetWatchStatus)

	api.Put("/posts/:id", s.EditPost)
	api.Get("/posts/:id/history", s.GetPostHistory)
	api.Delete("/posts/:id", s.DeletePost)

	api.Post("/votes", s.CastVote)
	api.Delete("/votes", s.RemoveVote)

	api.Get("/users/:id/stats", s.GetUserStats)
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = http.NoBody
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func seedHandlerUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedHandlerCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{Name: "General", Slug: "general", IsActive: true}
	require.NoError(t, db.Create(category).Error)
	return category
}
