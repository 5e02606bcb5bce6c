package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database
	MongoURL string
	MongoDB  string

	// Identity provider
	AuthJWKSURL     string
	AuthJWKSRefresh time.Duration
	AuthLeeway      time.Duration
	AuthIssuer      string // Optional: reject tokens from other issuers when set

	// AI provider (OpenAI-compatible)
	OpenAIAPIKey  string
	OpenAIBaseURL string // Optional: for compatible providers / local gateways
	OpenAIModel   string

	// Assets
	AssetBaseURL string // Prefix prepended to storage keys in projected DTOs

	// Rate limiting (AI endpoint)
	RecommendLimit  int
	RecommendWindow time.Duration

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		AppName: envString("APP_NAME", "TaskPilot"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "5000"),

		MongoURL: envRequired("MONGO_URL"),
		MongoDB:  envString("MONGO_DB", "taskpilot"),

		AuthJWKSURL:     envRequired("AUTH_JWKS_URL"),
		AuthJWKSRefresh: envDuration("AUTH_JWKS_REFRESH", time.Hour),
		AuthLeeway:      envDuration("AUTH_LEEWAY", 30*time.Second),
		AuthIssuer:      envString("AUTH_ISSUER", ""),

		OpenAIAPIKey:  envRequired("OPENAI_API_KEY"),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", ""),
		OpenAIModel:   envString("OPENAI_MODEL", "gpt-4o"),

		AssetBaseURL: envString("ASSET_BASE_URL", "/asset/"),

		RecommendLimit:  envInt("RECOMMEND_RATE_LIMIT", 10),
		RecommendWindow: envDuration("RECOMMEND_RATE_WINDOW", time.Minute),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:    envRequired("S3_REGION"),
		S3Bucket:    envRequired("S3_BUCKET"),
		S3AccessKey: envRequired("S3_ACCESS_KEY"),
		S3SecretKey: envRequired("S3_SECRET_KEY"),
		S3Endpoint:  envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
