package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	MaxFileSize    int64
	LayoutPath     string
	AllowedOrigins []string
	MetricsEnabled bool
	RateLimit      RateLimitConfig
	Results        ResultsConfig
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// ResultsConfig controls how long result handles stay addressable.
type ResultsConfig struct {
	TTL           time.Duration
	PurgeInterval time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Ignoring .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		MaxFileSize:    int64(getEnvAsInt("MAX_FILE_SIZE_MB", 10)) << 20,
		LayoutPath:     getEnv("LAYOUT_PATH", ""),
		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		RateLimit: RateLimitConfig{
			PerSecond: getEnvAsFloat("UPLOAD_RATE_LIMIT_PER_SECOND", 5),
			Burst:     getEnvAsInt("UPLOAD_RATE_LIMIT_BURST", 10),
		},
		Results: ResultsConfig{
			TTL:           getEnvAsDuration("RESULT_TTL", time.Hour),
			PurgeInterval: getEnvAsDuration("PURGE_INTERVAL", 10*time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
