package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Nabin-web/startrace/internal/api/handler"
	"github.com/Nabin-web/startrace/internal/api/middleware"
	"github.com/Nabin-web/startrace/internal/core/domain"
	"github.com/Nabin-web/startrace/internal/core/service"
	mongodb "github.com/Nabin-web/startrace/internal/infrastructure/db/mongo"
	redisdb "github.com/Nabin-web/startrace/internal/infrastructure/db/redis"
	"github.com/Nabin-web/startrace/internal/infrastructure/storage"
	"github.com/Nabin-web/startrace/internal/pkg/config"
	"github.com/Nabin-web/startrace/internal/ws"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("csvmanager"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	fileRepo := mongodb.NewFileRepository(db)
	blobStore := storage.NewLocalStore(cfg.UploadDir)
	contentCache := redisdb.NewContentCache(rdb)

	registry := ws.NewRegistry(log)
	notifier := ws.NewNotifier(registry)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	authService := service.NewAuthService(userRepo, tokens, log)
	fileService := service.NewFileService(fileRepo, blobStore, contentCache, notifier, log)

	authHandler := handler.NewAuthHandler(authService)
	fileHandler := handler.NewFileHandler(fileService, blobStore)
	adminHandler := handler.NewAdminHandler(fileService, userRepo)
	wsHandler := handler.NewWSHandler(authService, registry, log)

	authRequired := middleware.Auth(authService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, authRequired)

	// --- File routes (any authenticated user) ---
	files := e.Group("/api/files", authRequired)
	files.GET("", fileHandler.List)
	files.GET("/:id", fileHandler.Download)
	files.GET("/:id/content", fileHandler.Content)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authRequired, adminOnly)
	admin.POST("/files/upload", adminHandler.Upload)
	admin.DELETE("/files/:id", adminHandler.DeleteFile)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Push notifications ---
	e.GET("/ws", wsHandler.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
