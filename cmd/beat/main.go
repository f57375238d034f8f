package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/andreypavlenko/jobmatch/internal/config"
	"github.com/andreypavlenko/jobmatch/internal/platform/logger"
	"github.com/andreypavlenko/jobmatch/internal/platform/postgres"
	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	"github.com/andreypavlenko/jobmatch/internal/platform/redis"
	"github.com/andreypavlenko/jobmatch/internal/platform/sentry"

	ingestionRepo "github.com/andreypavlenko/jobmatch/modules/ingestion/repository"
	"github.com/andreypavlenko/jobmatch/modules/tasks"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main runs component K's beat side: a single cron-driven process that,
// on every tick, enumerates active saved searches and enqueues a
// sync_saved_search task for each (§4.4).
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log_, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer log_.Sync()

	flush, err := sentry.Init(cfg.Sentry, "jobmatch-beat")
	if err != nil {
		log_.Fatal("Failed to initialize Sentry", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log_.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	taskClient := queue.NewClient(redisClient.Client, "jobmatch:tasks")

	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log_.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()

	savedSearchRepository := ingestionRepo.NewSavedSearchRepository(pgClient.Pool)

	beat, err := tasks.NewBeat(cfg.SavedSearch.SyncIntervalMinutes, savedSearchRepository, taskClient, log_)
	if err != nil {
		log_.Fatal("Failed to schedule saved-search beat", zap.Error(err))
	}

	log_.Info("Starting jobmatch beat scheduler",
		zap.Int("interval_minutes", cfg.SavedSearch.SyncIntervalMinutes),
	)
	beat.Start()
	defer beat.Stop()

	<-ctx.Done()
	log_.Info("Beat scheduler exiting")
}
