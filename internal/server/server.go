// Package server contains the HTTP handlers for the forum API.
package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"quorum/internal/cache"
	"quorum/internal/config"
	"quorum/internal/database"
	"quorum/internal/middleware"
	"quorum/internal/policy"
	"quorum/internal/repository"
	"quorum/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	flags          *policy.Flags

	categoryService   *service.CategoryService
	topicService      *service.TopicService
	postService       *service.PostService
	replyService      *service.ReplyService
	voteService       *service.VoteService
	moderationService *service.ModerationService
	reportService     *service.ReportService
	watchService      *service.WatchService
	statsService      *service.StatsService
	tagRepo           repository.TagRepository
	userRepo          repository.UserRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	postRepo := repository.NewPostRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	historyRepo := repository.NewEditHistoryRepository(db)
	modRepo := repository.NewModerationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	watchRepo := repository.NewWatchRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	tagRepo := repository.NewTagRepository(db)

	flags := policy.New(cfg.PolicyFlags)

	// fiberprometheus registers its collectors with the default registry;
	// a single shared instance keeps repeated construction (tests) safe.
	promOnce.Do(func() {
		promInstance = fiberprometheus.New("quorum-api")
	})
	prom := promInstance

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		flags:          flags,
		tagRepo:        tagRepo,
		userRepo:       userRepo,
	}

	server.categoryService = service.NewCategoryService(categoryRepo)
	server.topicService = service.NewTopicService(topicRepo, categoryRepo, userRepo, tagRepo)
	server.postService = service.NewPostService(postRepo, topicRepo, userRepo, historyRepo, flags)
	server.replyService = service.NewReplyService(replyRepo, postRepo, topicRepo, userRepo, historyRepo, flags)
	server.voteService = service.NewVoteService(voteRepo, userRepo)
	server.moderationService = service.NewModerationService(modRepo, userRepo)
	server.reportService = service.NewReportService(reportRepo, userRepo)
	server.watchService = service.NewWatchService(watchRepo, topicRepo)
	server.statsService = service.NewStatsService(statsRepo, userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// propagate request ID and user ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(middleware.TracingMiddleware())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public browse routes; OptionalAuth lets logged-in moderators widen
	// their read scope without requiring login for anonymous readers.
	categories := api.Group("/categories", middleware.OptionalAuth)
	categories.Get("/", s.ListCategories)
	categories.Get("/slug/:slug", s.GetCategoryBySlug)
	categories.Get("/:id", s.GetCategory)

	topics := api.Group("/topics", middleware.OptionalAuth)
	topics.Get("/", s.ListTopics)
	topics.Get("/:id/posts", s.ListPosts)
	topics.Get("/:id", s.GetTopic)

	posts := api.Group("/posts", middleware.OptionalAuth)
	posts.Get("/:id/replies", s.ListReplies)
	posts.Get("/:id/history", s.GetPostHistory)
	posts.Get("/:id", s.GetPost)

	replies := api.Group("/replies", middleware.OptionalAuth)
	replies.Get("/:id/history", s.GetReplyHistory)
	replies.Get("/:id", s.GetReply)

	tags := api.Group("/tags")
	tags.Get("/", s.ListTags)

	api.Get("/users/:id/stats", s.GetUserStats)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	protected.Post("/topics", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_topic"), s.CreateTopic)
	protected.Put("/topics/:id", s.UpdateTopic)
	protected.Post("/topics/:id/status", s.TransitionTopic)
	protected.Post("/topics/:id/answer", s.MarkAnswer)
	protected.Delete("/topics/:id/answer", s.UnmarkAnswer)
	protected.Post("/topics/:id/watch", s.WatchTopic)
	protected.Delete("/topics/:id/watch", s.UnwatchTopic)
	protected.Get("/topics/:id/watch", s.GetWatchStatus)

	protected.Post("/topics/:id/posts", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	protected.Put("/posts/:id", s.EditPost)
	protected.Delete("/posts/:id", s.DeletePost)

	protected.Post("/posts/:id/replies", middleware.RateLimit(
		s.redis, 20, time.Minute, "create_reply"), s.CreateReply)
	protected.Put("/replies/:id", s.EditReply)
	protected.Delete("/replies/:id", s.DeleteReply)

	votes := protected.Group("/votes")
	votes.Post("/", middleware.RateLimit(
		s.redis, 30, time.Minute, "vote"), s.CastVote)
	votes.Delete("/", s.RemoveVote)
	votes.Get("/me", s.ListMyVotes)
	votes.Get("/", s.GetMyVote)

	reports := protected.Group("/reports")
	reports.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "report"), s.FileReport)
	reports.Get("/:reference", s.GetReportByReference)

	watched := protected.Group("/watched")
	watched.Get("/", s.ListWatchedTopics)

	// Moderator routes
	mod := protected.Group("/mod", middleware.ModeratorRequired)
	mod.Post("/categories", s.CreateCategory)
	mod.Put("/categories/:id", s.UpdateCategory)
	mod.Post("/categories/:id/activate", s.ActivateCategory)
	mod.Post("/categories/:id/deactivate", s.DeactivateCategory)
	mod.Post("/categories/:id/recount", s.RecountCategory)

	mod.Post("/topics/:id/pin", s.PinTopic)
	mod.Delete("/topics/:id/pin", s.UnpinTopic)
	mod.Post("/topics/:id/lock", s.LockTopic)
	mod.Delete("/topics/:id/lock", s.UnlockTopic)
	mod.Get("/topics/:id/watchers", s.ListWatchers)

	mod.Post("/posts/:id/restore", s.RestorePost)
	mod.Post("/replies/:id/restore", s.RestoreReply)

	mod.Post("/content/remove", s.RemoveContent)
	mod.Post("/users/:id/ban", s.BanUser)
	mod.Post("/users/:id/unban", s.UnbanUser)
	mod.Post("/users/:id/warn", s.WarnUser)
	mod.Get("/log", s.GetModerationLog)

	mod.Get("/reports", s.ListReports)
	mod.Post("/reports/:id/resolve", s.ResolveReport)

	mod.Post("/users/:id/stats/recompute", s.RecomputeUserStats)

	mod.Delete("/tags/:id", s.DeleteTag)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// the cache is optional; degraded is still ready
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-held resources. The HTTP app itself is owned and
// stopped by the entrypoint.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
