package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Log        LogConfig
	S3         S3Config
	Sentry     SentryConfig
	Embedding  EmbeddingConfig
	JobBoard   JobBoardConfig
	SavedSearch SavedSearchConfig
	Resend     ResendConfig
	Recommend  RecommendConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration. Redis doubles as the task-runtime
// broker and result store (component K).
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// S3Config holds S3-compatible object storage configuration, used for
// uploaded resume PDFs.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// SentryConfig holds error-monitoring configuration.
type SentryConfig struct {
	DSN         string
	Environment string
}

// EmbeddingConfig selects and configures the embedding provider (component B).
type EmbeddingConfig struct {
	Provider    string // localhash | sbert | fastembed | openai | gigachat
	ModelName   string
	Dimension   int
	APIBaseURL  string
	APIKey      string
	GigachatClientID     string
	GigachatClientSecret string
	GigachatAuthURL      string
}

// JobBoardConfig holds the external job-board client configuration
// (component E).
type JobBoardConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// ListingBaseURL is the public (non-API) site the rendered-page
	// fallback renders, since the API and the browsable site live on
	// different hosts.
	ListingBaseURL string
}

// SavedSearchConfig configures the beat schedule for saved-search resync.
type SavedSearchConfig struct {
	SyncIntervalMinutes int
}

// ResendConfig configures the optional notify step of the recommendation
// chain (SPEC_FULL §10).
type ResendConfig struct {
	APIKey    string
	FromEmail string
}

// RecommendConfig bounds the recommendation driver's fan-out (component J).
type RecommendConfig struct {
	Concurrency     int
	CandidatePoolSize int
}

// Load reads configuration from environment variables, failing fast on
// settings whose absence would otherwise surface as a confusing failure
// deep inside a subsystem: HH_USER_AGENT must be set and EMBEDDING_DIM must
// be positive. EMBEDDING_DIM is not compared with the embedding model's
// own output dimension here.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "jobmatch"),
			Password:        getEnv("DB_PASSWORD", "jobmatch"),
			DBName:          getEnv("DB_NAME", "jobmatch"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "eu-central"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("SERVER_ENV", "development"),
		},
		Embedding: EmbeddingConfig{
			Provider:             getEnv("EMBEDDING_PROVIDER", "localhash"),
			ModelName:            getEnv("EMBEDDING_MODEL_NAME", "localhash-v1"),
			Dimension:            getEnvAsInt("EMBEDDING_DIM", 384),
			APIBaseURL:           getEnv("EMBEDDING_API_BASE_URL", ""),
			APIKey:               getEnv("EMBEDDING_API_KEY", ""),
			GigachatClientID:     getEnv("GIGACHAT_CLIENT_ID", ""),
			GigachatClientSecret: getEnv("GIGACHAT_CLIENT_SECRET", ""),
			GigachatAuthURL:      getEnv("GIGACHAT_AUTH_URL", "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"),
		},
		JobBoard: JobBoardConfig{
			BaseURL:        getEnv("HH_BASE_URL", "https://api.hh.ru"),
			UserAgent:      getEnv("HH_USER_AGENT", ""),
			Timeout:        getEnvAsDuration("HH_HTTP_TIMEOUT", 10*time.Second),
			ListingBaseURL: getEnv("HH_LISTING_BASE_URL", "https://hh.ru"),
		},
		SavedSearch: SavedSearchConfig{
			SyncIntervalMinutes: getEnvAsInt("SAVED_SEARCH_SYNC_INTERVAL_MINUTES", 5),
		},
		Resend: ResendConfig{
			APIKey:    getEnv("RESEND_API_KEY", ""),
			FromEmail: getEnv("RESEND_FROM_EMAIL", "recommendations@jobmatch.example.com"),
		},
		Recommend: RecommendConfig{
			Concurrency:       getEnvAsInt("RECOMMEND_CONCURRENCY", 4),
			CandidatePoolSize: getEnvAsInt("RECOMMEND_CANDIDATE_POOL_SIZE", 200),
		},
	}

	if cfg.JobBoard.UserAgent == "" {
		return nil, fmt.Errorf("HH_USER_AGENT is required")
	}
	if cfg.Embedding.Dimension <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIM must be positive")
	}

	return cfg, nil
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns the Redis address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
