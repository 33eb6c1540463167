// Command flagscan runs one NG keyword scan over recent company messages and
// exits. It is meant to be driven by cron.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"recruit_messaging/internal/cache"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/database"
	"recruit_messaging/internal/repository"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const scanTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level).With("job", "flagscan")

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("Flag scan failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	dbPool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Only the shared redis cache can be invalidated from a separate process.
	var taskCache cache.Cache
	if cfg.Cache.Backend == config.CacheBackendRedis {
		taskCache = cache.NewRedis(rdb, "cache", cache.Options{TTL: cfg.Cache.TTL, MaxEntries: cfg.Cache.MaxEntries}, log)
	}

	repos := repository.NewRepositories(dbPool, rdb, log)
	services := service.NewServices(repos, taskCache, cfg, log)

	flagged, err := services.Moderation.ScanForFlags(ctx)
	if err != nil {
		return err
	}

	log.Info("Flag scan complete", "flagged", len(flagged))
	return nil
}
