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

	"github.com/andreypavlenko/jobmatch/internal/config"
	httpPlatform "github.com/andreypavlenko/jobmatch/internal/platform/http"
	"github.com/andreypavlenko/jobmatch/internal/platform/logger"
	"github.com/andreypavlenko/jobmatch/internal/platform/postgres"
	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	"github.com/andreypavlenko/jobmatch/internal/platform/redis"
	"github.com/andreypavlenko/jobmatch/internal/platform/sentry"

	ingestionHandler "github.com/andreypavlenko/jobmatch/modules/ingestion/handler"
	ingestionRepo "github.com/andreypavlenko/jobmatch/modules/ingestion/repository"

	recommendHandler "github.com/andreypavlenko/jobmatch/modules/recommend/handler"

	matchstoreRepo "github.com/andreypavlenko/jobmatch/modules/matchstore/repository"
	matchstoreService "github.com/andreypavlenko/jobmatch/modules/matchstore/service"

	tailoringHandler "github.com/andreypavlenko/jobmatch/modules/tailoring/handler"

	"github.com/andreypavlenko/jobmatch/modules/tailoring"

	tasksHandler "github.com/andreypavlenko/jobmatch/modules/tasks/handler"

	profilesRepo "github.com/andreypavlenko/jobmatch/modules/profiles/repository"
	vacanciesRepo "github.com/andreypavlenko/jobmatch/modules/vacancies/repository"
	"github.com/andreypavlenko/jobmatch/modules/vectorstore"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title Jobmatch API
// @version 1.0
// @description HeadHunter-sourced vacancy ingestion, embedding-driven matching, and tailored application assistance.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
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

	flush, err := sentry.Init(cfg.Sentry, "jobmatch-api")
	if err != nil {
		log_.Fatal("Failed to initialize Sentry", zap.Error(err))
	}
	defer flush()

	log_.Info("Starting jobmatch API server",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log_.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()
	log_.Info("Connected to PostgreSQL")

	migrationsPath := "./migrations"
	if err := postgres.RunMigrations(ctx, cfg.Database, log_, migrationsPath); err != nil {
		log_.Fatal("Failed to run database migrations",
			zap.Error(err),
			zap.String("migrations_path", migrationsPath),
		)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log_.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log_.Info("Connected to Redis")

	taskClient := queue.NewClient(redisClient.Client, "jobmatch:tasks")

	// Ingestion and recommendation compute run in cmd/worker; the API only
	// enqueues tasks and serves reads, so it wires the repositories but not
	// modules/ingestion.Service or modules/jobboard.Client themselves.
	vacancyRepository := vacanciesRepo.NewVacancyRepository(pgClient.Pool)
	profileRepository := profilesRepo.NewProfileRepository(pgClient.Pool)
	savedSearchRepository := ingestionRepo.NewSavedSearchRepository(pgClient.Pool)
	scoreRepository := matchstoreRepo.NewScoreRepository(pgClient.Pool)
	embeddingStore := vectorstore.NewStore(pgClient.Pool)

	matchstoreSvc := matchstoreService.New(scoreRepository)

	tailoringSvc := tailoring.New(profileRepository, vacancyRepository, embeddingStore, matchstoreSvc)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpPlatform.RequestIDMiddleware())
	router.Use(httpPlatform.LoggerMiddleware(log_))
	router.Use(httpPlatform.CORSMiddleware())

	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))
	router.GET("/ping", pingHandler)

	ingestionHdl := ingestionHandler.New(taskClient, savedSearchRepository)
	recommendHdl := recommendHandler.New(matchstoreSvc, taskClient)
	tailoringHdl := tailoringHandler.New(tailoringSvc)
	tasksHdl := tasksHandler.New(taskClient)

	v1 := router.Group("/api/v1")
	{
		ingestionHdl.RegisterRoutes(v1)
		recommendHdl.RegisterRoutes(v1.Group("/profiles"))
		tailoringHdl.RegisterRoutes(v1)
		tasksHdl.RegisterRoutes(v1)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log_.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log_.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log_.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log_.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log_.Info("Server exited")
}

// healthCheckHandler godoc
// @Summary Health Check
// @Description Check the health status of the application and its dependencies
// @Tags system
// @Produce json
// @Success 200 {object} http.HealthResponse
// @Router /health [get]
func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpPlatform.RespondWithHealth(c, services)
	}
}

// pingHandler godoc
// @Summary Ping
// @Description Simple ping endpoint to check if the API is responding
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
