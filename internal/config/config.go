package config

import (
	"os"
	"strconv"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	StorageDriver    string
	DatabaseURL      string
	DatabaseMaxConns int

	RedisURL        string
	CommentCacheTTL time.Duration

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	Domain       string
	// EmailsEnabled is the system-wide switch for the email fallback channel.
	EmailsEnabled bool

	PushEndpointIOS     string
	PushEndpointAndroid string
	PushAPIKey          string
	PushTimeout         time.Duration

	DeliveryConcurrency     int
	HolidaySubmissionReward int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		StorageDriver:    getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 25),

		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		CommentCacheTTL: getDurationEnv("COMMENT_CACHE_TTL", 5*time.Minute),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "holidaily-avatars"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		FromEmail:     getEnv("FROM_EMAIL", "noreply@holidailyapp.com"),
		Domain:        getEnv("DOMAIN", "holidailyapp.com"),
		EmailsEnabled: getBoolEnv("EMAILS_ENABLED", false),

		PushEndpointIOS:     getEnv("PUSH_ENDPOINT_IOS", ""),
		PushEndpointAndroid: getEnv("PUSH_ENDPOINT_ANDROID", ""),
		PushAPIKey:          getEnv("PUSH_API_KEY", ""),
		PushTimeout:         getDurationEnv("PUSH_TIMEOUT", 10*time.Second),

		DeliveryConcurrency:     getIntEnv("DELIVERY_CONCURRENCY", 8),
		HolidaySubmissionReward: getIntEnv("HOLIDAY_SUBMISSION_REWARD", 100),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
