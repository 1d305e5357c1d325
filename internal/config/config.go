package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the pricing service. Everything
// the core needs (app id, issuer id, signing key path) is resolved here
// once and passed into constructors, never read from the environment at
// call sites.
type Config struct {
	// Server
	Port        string
	Environment string

	// App Store Connect credentials
	IssuerID       string
	KeyID          string
	PrivateKeyPath string
	BearerToken    string // optional pre-minted token, overrides key-based signing

	// Target app
	AppID string

	// Vendor API
	APIBaseURL       string
	RequestRateLimit int // requests per second against the vendor
	TokenTTL         time.Duration

	// Pricing
	PricePointPageSize int
	PriceListPageSize  int

	// Bulk edits
	BulkPacingInterval time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8094"),
		Environment: getEnv("ENVIRONMENT", "development"),

		IssuerID:       getEnv("ASC_ISSUER_ID", ""),
		KeyID:          getEnv("ASC_KEY_ID", ""),
		PrivateKeyPath: getEnv("ASC_PRIVATE_KEY_PATH", ""),
		BearerToken:    getEnv("ASC_BEARER_TOKEN", ""),

		AppID: getEnv("ASC_APP_ID", ""),

		APIBaseURL:       getEnv("ASC_API_BASE_URL", ""),
		RequestRateLimit: getEnvAsInt("ASC_RATE_LIMIT", 2),
		TokenTTL:         getEnvAsDuration("ASC_TOKEN_TTL", 10*time.Minute),

		PricePointPageSize: getEnvAsInt("PRICE_POINT_PAGE_SIZE", 200),
		PriceListPageSize:  getEnvAsInt("PRICE_LIST_PAGE_SIZE", 50),

		BulkPacingInterval: getEnvAsDuration("BULK_PACING_INTERVAL", 1*time.Second),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
