package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Backend gateway configuration
	GatewayBaseURL string
	GatewayTimeout time.Duration

	// Image host configuration
	ImageUploadURL    string
	ImageUploadPreset string
	ImageTimeout      time.Duration

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Session configuration
	SessionTTL time.Duration

	// Refresh configuration
	CatalogRefresh      time.Duration
	NotificationRefresh time.Duration

	// Rate limiting
	ActionLockTTL  time.Duration
	RequestsPerMin int

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Gateway
		GatewayBaseURL: getEnv("GATEWAY_BASE_URL", "http://localhost:8080"),
		GatewayTimeout: getEnvAsDuration("GATEWAY_TIMEOUT", "10s"),

		// Image host
		ImageUploadURL:    getEnv("IMAGE_UPLOAD_URL", "https://api.cloudinary.com/v1_1/dxzumlzrv/image/upload"),
		ImageUploadPreset: getEnv("IMAGE_UPLOAD_PRESET", "donation_preset"),
		ImageTimeout:      getEnvAsDuration("IMAGE_TIMEOUT", "30s"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// Sessions
		SessionTTL: getEnvAsDuration("SESSION_TTL", "24h"),

		// Refresh intervals
		CatalogRefresh:      getEnvAsDuration("CATALOG_REFRESH", "60s"),
		NotificationRefresh: getEnvAsDuration("NOTIFICATION_REFRESH", "30s"),

		// Rate limiting
		ActionLockTTL:  getEnvAsDuration("ACTION_LOCK_TTL", "30s"),
		RequestsPerMin: getEnvAsInt("REQUESTS_PER_MIN", 120),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
