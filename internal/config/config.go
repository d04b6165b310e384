// Package config loads application configuration from environment variables.
// A .env file, if present, is loaded by main before this package is consulted.
package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration.
type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string
	Env         string // "development" or "production"
}

// Load reads configuration from environment variables.
// DATABASE_URL and JWT_SECRET are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "3001"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Env:         getEnv("ENV", "development"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
