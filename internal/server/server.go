// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"harnect/internal/cache"
	"harnect/internal/config"
	"harnect/internal/database"
	"harnect/internal/media"
	"harnect/internal/middleware"
	"harnect/internal/observability"
	"harnect/internal/repository"
	"harnect/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	media          *media.Store

	userRepo       repository.UserRepository
	contentRepo    repository.ContentRepository
	engagementRepo repository.EngagementRepository
	followRepo     repository.FollowRepository
	feedbackRepo   repository.FeedbackRepository

	identityService   *service.IdentityService
	contentService    *service.ContentService
	engagementService *service.EngagementService
	socialService     *service.SocialService
	feedbackService   *service.FeedbackService
	searchService     *service.SearchService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	mediaStore, err := media.NewStore(cfg.UploadDir, cfg.MaxUploadMB)
	if err != nil {
		return nil, fmt.Errorf("media store init failed: %w", err)
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("harnect-api"),
		media:          mediaStore,
		userRepo:       repository.NewUserRepository(db),
		contentRepo:    repository.NewContentRepository(db),
		engagementRepo: repository.NewEngagementRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		feedbackRepo:   repository.NewFeedbackRepository(db),
	}

	server.identityService = service.NewIdentityService(server.userRepo)
	server.contentService = service.NewContentService(server.contentRepo, server.userRepo, mediaStore.Remove)
	server.engagementService = service.NewEngagementService(server.engagementRepo, server.contentRepo)
	server.socialService = service.NewSocialService(server.followRepo, server.userRepo)
	server.feedbackService = service.NewFeedbackService(server.feedbackRepo)
	server.searchService = service.NewSearchService(server.userRepo, server.contentRepo)

	server.baselineGuestGauge(context.Background())

	return server, nil
}

// baselineGuestGauge seeds the live-guest gauge from the store. The gauge is
// absolute, so a restart would otherwise report zero until the next mint.
func (s *Server) baselineGuestGauge(ctx context.Context) {
	guests, err := s.userRepo.CountGuests(ctx)
	if err != nil {
		log.Printf("guest gauge baseline failed: %v", err)
		return
	}
	observability.GuestSessions.Set(float64(guests))
}

// NewSweeper builds the background sweeper from the server's repositories.
func (s *Server) NewSweeper() *service.Sweeper {
	return service.NewSweeper(
		s.userRepo,
		s.contentRepo,
		s.media.Remove,
		time.Duration(s.config.GuestTTLHours)*time.Hour,
		time.Duration(s.config.SweepIntervalMinutes)*time.Minute,
	)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
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
		// Never rate-limit preflight requests; they are handled by CORS.
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

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Harnect Backend Metrics Dashboard",
	}))

	// Uploaded media blobs
	app.Static("/static/uploads", s.media.Dir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/guest", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "guest"), s.GuestLogin)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Public browse routes; OptionalAuth personalizes liked/following flags.
	api.Get("/feed", middleware.OptionalAuth, s.GetFeed)
	api.Get("/stories", middleware.OptionalAuth, s.GetStories)
	api.Get("/explore", middleware.RateLimit(
		s.redis, 30, time.Minute, "explore"), s.Explore)
	api.Get("/content/:id/comments", s.GetComments)
	api.Get("/content/:id", middleware.OptionalAuth, s.GetContent)
	// /users/me must be registered before /users/:handle or the param
	// route would swallow it.
	api.Get("/users/me", middleware.AuthRequired, s.GetMyProfile)
	api.Get("/users/:handle/content", middleware.OptionalAuth, s.GetUserContent)
	api.Get("/users/:handle", middleware.OptionalAuth, s.GetUserProfile)
	api.Get("/feedback", s.ListFeedback)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	users := protected.Group("/users")
	users.Put("/me", s.UpdateMyProfile)
	users.Put("/me/handle", s.RenameMe)
	users.Post("/:handle/follow", s.ToggleFollow)
	users.Get("/:handle/follow", s.GetFollowStatus)

	content := protected.Group("/content")
	content.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "publish"), s.CreateContent)
	content.Post("/:id/like", s.ToggleLike)
	content.Post("/:id/comments", middleware.RateLimit(
		s.redis, 15, time.Minute, "comment"), s.CreateComment)
	content.Delete("/:id/comments/:commentId", s.DeleteComment)
	content.Delete("/:id", s.DeleteContent)

	feedback := protected.Group("/feedback")
	feedback.Post("/", s.CreateFeedback)
	feedback.Put("/:id", s.UpdateFeedback)
	feedback.Delete("/:id", s.DeleteFeedback)
}

// Shutdown releases server-held resources. The Fiber app itself is shut
// down by the caller before this runs.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("error closing redis client: %v", err)
		}
	}

	return nil
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

	// Redis is an optional accelerator, not a readiness gate.
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
