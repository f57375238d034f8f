package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreypavlenko/jobmatch/internal/config"
	"github.com/andreypavlenko/jobmatch/internal/platform/logger"
	"github.com/andreypavlenko/jobmatch/internal/platform/postgres"
	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	"github.com/andreypavlenko/jobmatch/internal/platform/redis"
	"github.com/andreypavlenko/jobmatch/internal/platform/sentry"

	"github.com/andreypavlenko/jobmatch/modules/embeddings"
	"github.com/andreypavlenko/jobmatch/modules/ingestion"
	ingestionRepo "github.com/andreypavlenko/jobmatch/modules/ingestion/repository"
	"github.com/andreypavlenko/jobmatch/modules/jobboard"
	matchstoreRepo "github.com/andreypavlenko/jobmatch/modules/matchstore/repository"
	matchstoreService "github.com/andreypavlenko/jobmatch/modules/matchstore/service"
	profilesRepo "github.com/andreypavlenko/jobmatch/modules/profiles/repository"
	"github.com/andreypavlenko/jobmatch/modules/recommend"
	"github.com/andreypavlenko/jobmatch/modules/tasks"
	vacanciesRepo "github.com/andreypavlenko/jobmatch/modules/vacancies/repository"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main runs component K's worker side: one Worker loop per process,
// dispatching every task this repo's modules/tasks registry owns
// (import_hh, sync_saved_search, the two embedding builders,
// recompute_recommendations, notify).
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

	flush, err := sentry.Init(cfg.Sentry, "jobmatch-worker")
	if err != nil {
		log_.Fatal("Failed to initialize Sentry", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log_.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log_.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	taskClient := queue.NewClient(redisClient.Client, "jobmatch:tasks")

	jobBoardClient, err := jobboard.New(cfg.JobBoard.BaseURL, cfg.JobBoard.UserAgent, cfg.JobBoard.Timeout)
	if err != nil {
		log_.Fatal("Failed to construct job-board client", zap.Error(err))
	}
	jobBoardClient.WithRenderedPageFallback(jobboard.NewRenderedPageFetcher(cfg.JobBoard.ListingBaseURL, cfg.JobBoard.Timeout))
	defer jobBoardClient.Close()

	embeddingProvider, err := embeddings.Acquire(
		cfg.Embedding.Provider,
		cfg.Embedding.ModelName,
		cfg.Embedding.APIBaseURL,
		cfg.Embedding.APIKey,
		cfg.Embedding.Dimension,
		cfg.Embedding.GigachatAuthURL,
		cfg.Embedding.GigachatClientID,
		cfg.Embedding.GigachatClientSecret,
	)
	if err != nil {
		log_.Fatal("Failed to acquire embedding provider", zap.Error(err))
	}

	vacancyRepository := vacanciesRepo.NewVacancyRepository(pgClient.Pool)
	vacancyTransactor := vacanciesRepo.NewTransactor(pgClient.Pool)
	profileRepository := profilesRepo.NewProfileRepository(pgClient.Pool)
	savedSearchRepository := ingestionRepo.NewSavedSearchRepository(pgClient.Pool)
	scoreRepository := matchstoreRepo.NewScoreRepository(pgClient.Pool)
	embeddingStore := vectorstore.NewStore(pgClient.Pool)

	ingestionService := ingestion.NewService(
		jobBoardClient,
		vacancyRepository,
		vacancyTransactor,
		savedSearchRepository,
		taskClient,
		"hh",
		time.Now,
	)

	matchstoreSvc := matchstoreService.New(scoreRepository)

	recommendDriver := recommend.New(
		profileRepository,
		vacancyRepository,
		embeddingStore,
		matchstoreSvc,
		cfg.Recommend.Concurrency,
		cfg.Recommend.CandidatePoolSize,
	)

	deps := &tasks.Deps{
		Importer:      ingestionService,
		SavedSearches: savedSearchRepository,
		Syncer:        ingestionService,
		Vacancies:     vacancyRepository,
		Profiles:      profileRepository,
		Embeddings:    embeddingStore,
		Embedder:      embeddingProvider,
		Recomputer:    recommendDriver,
		TaskResults:   taskClient,
		FromEmail:     cfg.Resend.FromEmail,
	}
	if cfg.Resend.APIKey != "" {
		deps.Mailer = tasks.NewResendMailer(cfg.Resend.APIKey)
	} else {
		log_.Warn("RESEND_API_KEY not set, notify task will skip sending email")
	}

	worker := queue.NewWorker(taskClient, deps.BuildRegistry(), log_)
	worker.OnFailure = sentry.CaptureTaskFailure

	log_.Info("Starting jobmatch worker", zap.String("env", cfg.Server.Env))
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		log_.Fatal("Worker exited with error", zap.Error(err))
	}
	log_.Info("Worker exited")
}
