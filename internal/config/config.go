package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	// DatabaseURL is the Postgres connection URL of the Supabase project.
	DatabaseURL string
	// ServiceKey is the service-role credential used as the database password.
	ServiceKey string
	LogLevel   string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DatabaseURL: getEnv("SUPABASE_DB_URL", ""),
		ServiceKey:  getEnv("SUPABASE_SERVICE_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" || cfg.ServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_DB_URL and SUPABASE_SERVICE_KEY must be set in environment variables")
	}

	logger.Info().
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
