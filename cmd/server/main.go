package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/database"
	"recruit_messaging/internal/database/migration"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/handler"
	"recruit_messaging/internal/middleware"
	"recruit_messaging/internal/repository"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	appLogger := logger.New(cfg.Log.Level)

	// Подключение к PostgreSQL
	dbPool, err := database.NewPool(context.Background(), cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	// Проверка подключения к БД
	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		runner := migration.Runner{Log: appLogger}
		if err := runner.Run(context.Background(), dbPool); err != nil {
			appLogger.Fatal("Failed to apply migrations", "error", err)
		}
	}

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Проверка подключения к Redis
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	taskCache := newTaskCache(cfg.Cache, rdb, appLogger)

	// Инициализация репозиториев
	repos := repository.NewRepositories(dbPool, rdb, appLogger)

	// Инициализация сервисов
	services := service.NewServices(repos, taskCache, cfg, appLogger)

	// Инициализация middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Identity, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, appLogger)

	// Инициализация handlers
	handlers := handler.NewHandlers(services, cfg, appLogger)

	// Настройка роутера
	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	// Запуск HTTP сервера
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func newTaskCache(cfg config.CacheConfig, rdb *redis.Client, log logger.Logger) cache.Cache {
	opts := cache.Options{TTL: cfg.TTL, MaxEntries: cfg.MaxEntries}
	if cfg.Backend == config.CacheBackendRedis {
		log.Info("Task cache backed by Redis", "ttl", cfg.TTL.String(), "max_entries", cfg.MaxEntries)
		return cache.NewRedis(rdb, "cache", opts, log)
	}
	log.Info("Task cache backed by memory", "ttl", cfg.TTL.String(), "max_entries", cfg.MaxEntries)
	return cache.NewMemory(opts)
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Check)

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		rooms := v1.Group("/rooms")
		rooms.Use(middleware.RequireActorTypes(domain.ActorTypeCandidate, domain.ActorTypeCompanyUser))
		{
			rooms.POST("", handlers.Room.Create)
			rooms.GET("", handlers.Room.List)
			rooms.GET("/:id/participants", handlers.Room.Participants)
			rooms.GET("/:id/messages", handlers.Chat.GetMessages)
			rooms.POST("/:id/messages",
				rateLimitMiddleware.Limit("send", cfg.RateLimit.MessagesPerMinute, time.Minute),
				handlers.Chat.SendMessage)
			rooms.POST("/:id/read", handlers.Chat.MarkRead)
			rooms.GET("/:id/unread", handlers.Chat.Unread)
		}

		v1.GET("/tasks", handlers.Task.List)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireActorTypes(domain.ActorTypeAdmin))
		{
			moderation := admin.Group("/moderation")
			{
				moderation.POST("/scan", handlers.Moderation.Scan)
				moderation.GET("/queue", handlers.Moderation.Queue)
				moderation.POST("/messages/:messageId/resolve", handlers.Moderation.Resolve)
			}

			keywords := admin.Group("/ng-keywords")
			{
				keywords.GET("", handlers.Keyword.List)
				keywords.POST("", handlers.Keyword.Create)
				keywords.PUT("/:id", handlers.Keyword.Update)
				keywords.DELETE("/:id", handlers.Keyword.Delete)
			}
		}
	}

	return router
}
