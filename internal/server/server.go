// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"

	"murmur/internal/auth"
	"murmur/internal/cache"
	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/middleware"
	"murmur/internal/repository"
	"murmur/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	promMiddleware *fiberprometheus.FiberPrometheus
	issuer         *auth.Issuer
	userRepo       repository.UserRepository
	tokenRepo      repository.TokenRepository
	messageService *service.MessageService
	feedback       *service.FeedbackService
	postService    *service.PostService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-established DB handle.
// Use this in tests or when a bootstrap layer owns the connections.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reactionRepo := repository.NewMessageReactionRepository(db)
	postRepo := repository.NewPostRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics("murmur-api"),
		issuer:         auth.NewIssuer(cfg.JWTSecret, cfg.JWTAlgorithm),
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
	}
	server.messageService = service.NewMessageService(messageRepo, userRepo, reactionRepo)
	server.feedback = service.NewFeedbackService(messageRepo, reactionRepo)
	server.postService = service.NewPostService(postRepo, db)

	return server
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing spans before logging so the trace ID lands in the log context
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:8080,http://127.0.0.1:8080"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public routes
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", s.Signup)
	authGroup.Post("/signin", s.Signin)

	app.Get("/users", s.ListUsers)

	authRequired := middleware.AuthRequired(s.issuer, s.tokenRepo)

	// Direct messages and message feedback
	chat := app.Group("/chat", authRequired)
	chat.Post("/messages", s.SendMessage)
	chat.Get("/messages/:recipientId", s.ListInbox)
	chat.Put("/messages/:messageId", s.EditMessage)
	chat.Delete("/messages/:messageId", s.DeleteMessage)
	chat.Post("/messages/:messageId/like", s.LikeMessage)
	chat.Post("/messages/:messageId/dislike", s.DislikeMessage)

	// Post feed
	blog := app.Group("/blog", authRequired)
	blog.Post("/post", s.CreatePost)
	blog.Get("/posts", s.ListPosts)
	blog.Put("/post/:postId", s.EditPost)
	blog.Delete("/post/:postId", s.DeletePost)
	blog.Post("/post/:postId/reaction", s.ReactToPost)
}

// HealthCheck reports liveness and database reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	cache.Close()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
