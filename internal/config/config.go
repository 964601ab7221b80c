package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string
	LogLevel string

	MongoURI string
	DBName   string

	RedisURL string // optional, enables the upstream response cache

	SpoonacularBaseURL string
	SpoonacularAPIKey  string

	// Auth. When JWKSURL is set, bearer tokens are verified against the
	// identity provider's published keys. Without it the server runs in
	// legacy mode: unverified payload decode plus the X-User-Id fallback.
	AuthJWKSURL      string
	AuthAudience     string
	AuthIssuer       string
	AllowUserHeader  bool

	ImageHostUploadURL string
	ImageHostPreset    string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		DBName:             getEnvOrDefault("DB_NAME", "plateful"),
		RedisURL:           os.Getenv("REDIS_URL"),
		SpoonacularBaseURL: getEnvOrDefault("SPOONACULAR_BASE_URL", "https://api.spoonacular.com"),
		AuthJWKSURL:        os.Getenv("AUTH_JWKS_URL"),
		AuthAudience:       os.Getenv("AUTH_AUDIENCE"),
		AuthIssuer:         os.Getenv("AUTH_ISSUER"),
		AllowUserHeader:    getEnvOrDefault("AUTH_ALLOW_USER_HEADER", "true") == "true",
		ImageHostUploadURL: os.Getenv("IMAGE_HOST_UPLOAD_URL"),
		ImageHostPreset:    os.Getenv("IMAGE_HOST_UPLOAD_PRESET"),
	}

	if cfg.MongoURI = os.Getenv("MONGO_URI"); cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable is required")
	}

	if cfg.SpoonacularAPIKey = os.Getenv("SPOONACULAR_API_KEY"); cfg.SpoonacularAPIKey == "" {
		return nil, fmt.Errorf("SPOONACULAR_API_KEY environment variable is required")
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
