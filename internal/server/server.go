package server

import (
	"time"

	"mailsift/internal/analysis"
	"mailsift/internal/cache"
	"mailsift/internal/config"
	"mailsift/internal/email"
	"mailsift/internal/handlers"
	"mailsift/internal/ingest"
	"mailsift/internal/store"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo     *echo.Echo
	db       *sqlx.DB
	config   *config.Config
	logger   zerolog.Logger
	store    *store.Store
	analysis *analysis.Service
	ingest   *ingest.Service
	sender   *email.Sender
	cache    *cache.DashboardCache
}

// New creates a new server instance
func New(cfg *config.Config, db *sqlx.DB, repo *store.Store, analysisSvc *analysis.Service, ingestSvc *ingest.Service, logger zerolog.Logger) *Server {
	return &Server{
		config:   cfg,
		db:       db,
		logger:   logger,
		store:    repo,
		analysis: analysisSvc,
		ingest:   ingestSvc,
		sender:   email.NewSender(cfg.SendGridAPIKey, cfg.FromEmail),
		cache:    cache.New(time.Duration(cfg.DashboardCacheTTL) * time.Second),
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	// API group with /api prefix
	api := s.echo.Group("/api")

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health endpoints (keep at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))
	s.echo.GET("/healthz/db", handlers.DBHealthHandler(s.db))

	// API endpoints under /api prefix
	api.GET("/", handlers.RootHandler(s.config.Version))
	api.POST("/users", handlers.CreateUserHandler(s.store))
	api.POST("/emails/upload", handlers.UploadEmailsHandler(s.ingest, s.analysis, s.logger))
	api.POST("/emails/process", handlers.ProcessEmailsHandler(s.analysis))
	api.POST("/analysis", handlers.AnalyzeHandler(s.analysis))
	api.GET("/emails", handlers.ListEmailsHandler(s.store))
	api.GET("/emails/:id/drafts", handlers.ListDraftsHandler(s.store))
	api.POST("/drafts/:id/send", handlers.SendDraftHandler(s.store, s.sender, s.logger))
	api.GET("/dashboard", handlers.DashboardHandler(s.store, s.cache))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
