// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Market data provider
	MarketBaseURL    string
	MarketAPIKey     string
	MarketTimeout    time.Duration
	PriceCacheLimit  int
	SuggestionPeriod string
}

var appConfig *Config

// Load loads configuration from environment variables, reading a .env file
// first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "smartfinance"),
		DBPassword: getEnv("DB_PASSWORD", "smartfinance"),
		DBName:     getEnv("DB_NAME", "smartfinance"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "smartfinance.db"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		MarketBaseURL:    getEnv("MARKET_BASE_URL", "https://yfapi.net"),
		MarketAPIKey:     getEnv("MARKET_API_KEY", ""),
		SuggestionPeriod: getEnv("SUGGESTION_PERIOD", "1mo"),
	}

	expDur, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value, falling back to 24h\n")
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	timeout, err := time.ParseDuration(getEnv("MARKET_TIMEOUT", "30s"))
	if err != nil {
		log.Printf("Warning: invalid MARKET_TIMEOUT value, falling back to 30s\n")
		timeout = 30 * time.Second
	}
	config.MarketTimeout = timeout

	cacheLimit, err := strconv.Atoi(getEnv("PRICE_CACHE_LIMIT", "256"))
	if err != nil || cacheLimit <= 0 {
		cacheLimit = 256
	}
	config.PriceCacheLimit = cacheLimit

	appConfig = config
	return config, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
