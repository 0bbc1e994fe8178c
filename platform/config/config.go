// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings loaded from the environment.
type Config struct {
	Env            string
	DBPath         string
	DefaultRegion  string
	CarrierLang    string
	EnrichCacheTTL time.Duration
}

// Load reads configuration from the environment, with .env as a fallback.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		DBPath:         getEnv("TRACKER_DB_PATH", "phone_numbers.db"),
		DefaultRegion:  getEnv("DEFAULT_REGION", "NG"),
		CarrierLang:    getEnv("CARRIER_LANG", "en"),
		EnrichCacheTTL: mustDuration(getEnv("ENRICH_CACHE_TTL", "15m")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
