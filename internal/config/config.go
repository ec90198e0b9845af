package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	Port            string `env:"PORT" envDefault:"8080"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	ModelDir        string `env:"MODEL_DIR" envDefault:"./artifacts"`
	StrictModels    bool   `env:"STRICT_MODELS" envDefault:"false"`
	MandiAPIKey     string `env:"MANDI_API_KEY" envDefault:""`
	MandiBaseURL    string `env:"MANDI_BASE_URL" envDefault:"https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"`
	ForecastMinDays int    `env:"FORECAST_MIN_DAYS" envDefault:"5"`
	ForecastMaxDays int    `env:"FORECAST_MAX_DAYS" envDefault:"30"`
	ForecastDefault int    `env:"FORECAST_DEFAULT_DAYS" envDefault:"15"`
	HistoryDays     int    `env:"HISTORY_DAYS" envDefault:"120"`
	TopK            int    `env:"RECOMMEND_TOP_K" envDefault:"5"`
	CacheTTLMinutes int    `env:"CACHE_TTL_MINUTES" envDefault:"30"`
	RandomSeed      int64  `env:"RANDOM_SEED" envDefault:"42"`
	RequestTimeout  int    `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.Port = getEnvWithDefault("PORT", "8080")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.ModelDir = getEnvWithDefault("MODEL_DIR", "./artifacts")
	cfg.StrictModels = getEnvBoolWithDefault("STRICT_MODELS", false)
	cfg.MandiAPIKey = os.Getenv("MANDI_API_KEY")
	cfg.MandiBaseURL = getEnvWithDefault("MANDI_BASE_URL",
		"https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070")
	cfg.ForecastMinDays = getEnvIntWithDefault("FORECAST_MIN_DAYS", 5)
	cfg.ForecastMaxDays = getEnvIntWithDefault("FORECAST_MAX_DAYS", 30)
	cfg.ForecastDefault = getEnvIntWithDefault("FORECAST_DEFAULT_DAYS", 15)
	cfg.HistoryDays = getEnvIntWithDefault("HISTORY_DAYS", 120)
	cfg.TopK = getEnvIntWithDefault("RECOMMEND_TOP_K", 5)
	cfg.CacheTTLMinutes = getEnvIntWithDefault("CACHE_TTL_MINUTES", 30)
	cfg.RandomSeed = int64(getEnvIntWithDefault("RANDOM_SEED", 42))
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
