// Package config centralizes environment-driven settings.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings resolved from the environment.
type Config struct {
	Port      string
	LogLevel  string
	JWTSecret string

	DatabaseURL string
	RedisURL    string

	// FeedPageSize caps how many posts one feed fetch returns.
	FeedPageSize int
	// FeedQueryTimeout bounds the whole fetch cycle, primary read plus
	// dependent reads.
	FeedQueryTimeout time.Duration

	RateLimitPerMinute int

	AllowedOrigins []string
}

// Load resolves the configuration from environment variables with defaults
// suitable for local development.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		FeedPageSize:     getEnvInt("FEED_PAGE_SIZE", 20),
		FeedQueryTimeout: getEnvDuration("FEED_QUERY_TIMEOUT", 10*time.Second),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		AllowedOrigins: []string{getEnv("FRONTEND_URL", "http://localhost:3000")},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
