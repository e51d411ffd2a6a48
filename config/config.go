package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds all configuration for the admin dashboard
type Config struct {
	// Server configuration
	Port string

	// Store configuration
	StoreBackend     string
	MongoURI         string
	MongoDatabase    string
	IssuesCollection string
	MemorySeedFile   string
	StoreTimeout     time.Duration

	// Redis configuration for the status update limiter
	RedisAddress      string
	RedisPassword     string
	RateLimitPrefix   string
	StatusUpdateLimit int
	StatusUpdateWin   time.Duration

	// Operator token gate, disabled when empty
	JWTSecret string

	CORSAllowedOrigins []string

	// Presentation
	DateLayout      string
	DisplayTimezone string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		StoreBackend:     strings.ToLower(getEnv("STORE_BACKEND", BackendMongo)),
		MongoURI:         getEnv("MONGODB_URI", ""),
		MongoDatabase:    getEnv("MONGODB_DATABASE", "mydb"),
		IssuesCollection: getEnv("ISSUES_COLLECTION", "issues"),
		MemorySeedFile:   getEnv("MEMORY_SEED_FILE", ""),
		StoreTimeout:     getDurationEnv("STORE_TIMEOUT", 10*time.Second),

		RedisAddress:      getEnv("REDIS_ADDRESS", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RateLimitPrefix:   getEnv("REDIS_QUEUE_FOR_STATUS_LIMIT", "status-update"),
		StatusUpdateLimit: getIntEnv("STATUS_UPDATE_LIMIT", 30),
		StatusUpdateWin:   getDurationEnv("STATUS_UPDATE_WINDOW", time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),

		DateLayout:      getEnv("DATE_LAYOUT", "1/2/2006"),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "Local"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate checks the combination of settings before anything connects.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("please define the MONGODB_URI environment variable")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if c.RateLimitEnabled() {
		if c.StatusUpdateLimit <= 0 {
			return fmt.Errorf("STATUS_UPDATE_LIMIT must be positive")
		}
		if c.StatusUpdateWin <= 0 {
			return fmt.Errorf("STATUS_UPDATE_WINDOW must be positive")
		}
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return nil
}

// RateLimitEnabled reports whether a Redis address was configured.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisAddress != ""
}

// Location resolves DisplayTimezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.DisplayTimezone)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated variable, dropping empty parts
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
