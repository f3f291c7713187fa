package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"menuboard/internal/cache"
	"menuboard/internal/config"
	"menuboard/internal/database"
	"menuboard/internal/middleware"
	"menuboard/internal/models"
	"menuboard/internal/repository"
	"menuboard/internal/service"

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
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	configRepo     repository.ConfigRepository
	dishRepo       repository.DishRepository
	chefRepo       repository.ChefRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	boardService   *service.BoardService
	forumService   *service.ForumService
	imageService   *service.ImageService
	qrService      *service.QRCodeService
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
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	configRepo := repository.NewConfigRepository(db)
	dishRepo := repository.NewDishRepository(db)
	chefRepo := repository.NewChefRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	prom := middleware.InitMetrics("menuboard-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		configRepo:     configRepo,
		dishRepo:       dishRepo,
		chefRepo:       chefRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
	server.boardService = service.NewBoardService(configRepo, dishRepo, chefRepo, nil)
	server.forumService = service.NewForumService(postRepo, commentRepo, nil)
	server.imageService = service.NewImageService(cfg.StaticDir, cfg.UploadMaxMB)
	server.qrService = service.NewQRCodeService()

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing (before context middleware so traceID lands in locals)
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID, Trace ID and Device ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New(helmet.Config{
		// The display frontend loads images and QR data URLs from this origin.
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'",
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Admin-Token",
		MaxAge:       86400, // 24 hours
	}))

	// Global rate limiting (120 requests per minute per IP). The display
	// polls /api/data every few seconds, so the ceiling is generous.
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
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
	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Menuboard Backend Metrics Dashboard",
	}))

	// Public display aggregate
	api.Get("/data", s.GetData)

	// Dish and chef voting
	api.Post("/vote", middleware.RateLimit(
		s.redis, 30, time.Minute, "vote"), s.VoteDish)
	api.Post("/vote-cancel", middleware.RateLimit(
		s.redis, 30, time.Minute, "vote"), s.VoteDishCancel)
	api.Post("/vote-chef", middleware.RateLimit(
		s.redis, 30, time.Minute, "vote"), s.VoteChef)
	api.Post("/vote-chef-cancel", middleware.RateLimit(
		s.redis, 30, time.Minute, "vote"), s.VoteChefCancel)

	// QR codes for the mobile pages
	api.Get("/qrcode/:type", s.GetQRCode)

	// Anonymous forum
	forum := api.Group("/forum")
	forum.Get("/posts", s.GetForumPosts)
	forum.Post("/post", middleware.RateLimit(
		s.redis, 5, time.Minute, "forum_post"), s.CreateForumPost)
	forum.Post("/like", middleware.RateLimit(
		s.redis, 30, time.Minute, "forum_like"), s.LikeForumPost)
	forum.Post("/comment", middleware.RateLimit(
		s.redis, 10, time.Minute, "forum_comment"), s.CreateForumComment)
	forum.Delete("/post/:id", s.DeleteForumPost)
	forum.Delete("/comment/:id", s.DeleteForumComment)

	// Admin routes gated by the shared token
	admin := api.Group("/admin", middleware.AdminRequired(s.config.AdminToken))
	admin.Get("/config", s.GetAdminConfig)
	admin.Post("/config", s.UpdateAdminConfig)
	admin.Get("/dishes", s.GetAdminDishes)
	admin.Post("/dishes", s.CreateAdminDish)
	admin.Put("/dishes/:id", s.UpdateAdminDish)
	admin.Delete("/dishes/:id", s.DeleteAdminDish)
	admin.Get("/chefs", s.GetAdminChefs)
	admin.Post("/chefs", s.CreateAdminChef)
	admin.Put("/chefs/:id", s.UpdateAdminChef)
	admin.Delete("/chefs/:id", s.DeleteAdminChef)

	// Image upload (admin credential required)
	api.Post("/upload", middleware.AdminRequired(s.config.AdminToken), s.UploadImage)

	// Uploaded images and the static display/mobile pages
	app.Static("/static", s.config.StaticDir)
	app.Static("/", s.config.PublicDir)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
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

	// Redis is optional here: without it only rate limiting degrades.
	redisStatus := "disabled"
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

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Restaurant Event Board API",
		BodyLimit: (s.config.UploadMaxMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
