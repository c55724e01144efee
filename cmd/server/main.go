package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/conectapro/backend/internal/auth"
	"github.com/conectapro/backend/internal/cache"
	"github.com/conectapro/backend/internal/config"
	"github.com/conectapro/backend/internal/connections"
	"github.com/conectapro/backend/internal/database"
	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/feed"
	"github.com/conectapro/backend/internal/handlers"
	"github.com/conectapro/backend/internal/logger"
	"github.com/conectapro/backend/internal/metrics"
	"github.com/conectapro/backend/internal/middleware"
	"github.com/conectapro/backend/internal/notifications"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	if err := logger.Initialize(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := database.Initialize(); err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	if err := cache.Initialize(cfg.RedisURL); err != nil {
		logger.Log.Warn("redis unavailable, caching and rate limiting disabled", zap.Error(err))
	}

	metrics.Initialize()

	authSvc := auth.NewService(database.DB, cfg.JWTSecret)
	notificationSvc := notifications.NewService(database.DB)
	connectionSvc := connections.NewService(database.DB, notificationSvc)
	feedSvc := feed.NewService(database.DB).
		WithPageSize(cfg.FeedPageSize).
		WithTimeout(cfg.FeedQueryTimeout)

	h := handlers.NewHandlers(authSvc, feedSvc, notificationSvc, connectionSvc)

	router := setupRouter(cfg, h, authSvc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
	logger.Log.Info("server stopped")
}

func setupRouter(cfg *config.Config, h *handlers.Handlers, authSvc *auth.Service) *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.GinLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.RedisRateLimit(cfg.RateLimitPerMinute))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := database.Health(); err != nil {
			c.JSON(apierrors.StatusFor(apierrors.CodeStoreUnavailable), gin.H{
				"status": "unhealthy",
				"error":  string(apierrors.CodeStoreUnavailable),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", h.Register)
	v1.POST("/auth/login", h.Login)
	v1.GET("/markets", h.ListMarkets)
	v1.GET("/markets/:id/professions", h.ListProfessions)

	authed := v1.Group("")
	authed.Use(auth.Middleware(authSvc))
	{
		authed.GET("/auth/me", h.Me)

		authed.GET("/feed", h.GetFeed)

		authed.POST("/posts", h.CreatePost)
		authed.DELETE("/posts/:id", h.DeletePost)
		authed.POST("/posts/:id/like", h.ToggleLike)
		authed.POST("/posts/:id/save", h.ToggleSave)
		authed.GET("/posts/:id/comments", h.ListComments)
		authed.POST("/posts/:id/comments", h.CreateComment)
		authed.GET("/users/me/saved", h.GetSavedPosts)

		authed.GET("/profiles/me", h.GetMyProfile)
		authed.PUT("/profiles/me", h.UpsertMyProfile)
		authed.PUT("/profiles/me/markets", h.SetMarkets)
		authed.PUT("/profiles/me/professions", h.SetProfessions)
		authed.GET("/profiles/:user_id", h.GetProfile)

		authed.GET("/jobs", h.ListJobs)
		authed.POST("/jobs", h.CreateJob)

		authed.GET("/search/profiles", h.SearchProfiles)

		authed.GET("/connections/pending", h.ListPendingConnections)
		authed.GET("/connections/sent", h.ListSentConnections)
		authed.GET("/connections/accepted", h.ListAcceptedConnections)
		authed.POST("/connections", h.RequestConnection)
		authed.POST("/connections/:id/accept", h.AcceptConnection)
		authed.POST("/connections/:id/reject", h.RejectConnection)
		authed.DELETE("/connections/:id", h.CancelConnection)

		authed.GET("/notifications", h.ListNotifications)
		authed.GET("/notifications/unread-count", h.GetUnreadCount)
		authed.POST("/notifications/:id/read", h.MarkNotificationRead)
		authed.POST("/notifications/read-all", h.MarkAllNotificationsRead)
		authed.DELETE("/notifications/:id", h.DeleteNotification)
	}

	return router
}
