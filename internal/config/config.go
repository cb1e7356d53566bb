// Package config loads CLI settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the CLI defaults, populated from environment variables.
// Command-line flags override these per invocation.
type Config struct {
	LogLevel  string
	LogFormat string

	// DefaultMagType substitutes absent magnitude-type labels on read.
	DefaultMagType string
	// DepthInKm selects kilometers (true, the default) or meters for the
	// textual depth column.
	DepthInKm bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		DefaultMagType: os.Getenv("CATFORM_DEFAULT_MAGTYPE"),
		DepthInKm:      true,
	}

	if v := os.Getenv("CATFORM_DEPTH_IN_KM"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CATFORM_DEPTH_IN_KM %q: %w", v, err)
		}
		cfg.DepthInKm = b
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
