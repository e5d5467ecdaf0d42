// Package config loads runtime settings from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings for the agentwire server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string

	// DatabaseURL is the SQLite DSN for the message store.
	DatabaseURL string

	// ArtifactTTL is how long cached artifacts live without access.
	ArtifactTTL time.Duration

	// SweepInterval is how often the artifact sweeper runs.
	SweepInterval time.Duration

	// GenerateTimeout bounds a single model generation call.
	GenerateTimeout time.Duration

	// MaxConcurrentRuns caps the number of runs executing at once.
	MaxConcurrentRuns int64

	// DefaultProvider selects the model backend when a run does not
	// name one: "anthropic", "openai" or "mock".
	DefaultProvider string

	// DefaultModel is the model identifier passed to the provider.
	DefaultModel string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is "text" or "json".
	LogFormat string
}

// Load reads the configuration from the environment, applying defaults
// for anything unset.
func Load() *Config {
	return &Config{
		Port:              getEnv("AGENTWIRE_PORT", "8080"),
		DatabaseURL:       getEnv("AGENTWIRE_DATABASE_URL", "agentwire.db"),
		ArtifactTTL:       getEnvDuration("AGENTWIRE_ARTIFACT_TTL", 24*time.Hour),
		SweepInterval:     getEnvDuration("AGENTWIRE_SWEEP_INTERVAL", 10*time.Minute),
		GenerateTimeout:   getEnvDuration("AGENTWIRE_GENERATE_TIMEOUT", 2*time.Minute),
		MaxConcurrentRuns: getEnvInt64("AGENTWIRE_MAX_CONCURRENT_RUNS", 32),
		DefaultProvider:   getEnv("AGENTWIRE_PROVIDER", "mock"),
		DefaultModel:      getEnv("AGENTWIRE_MODEL", ""),
		LogLevel:          getEnv("AGENTWIRE_LOG_LEVEL", "info"),
		LogFormat:         getEnv("AGENTWIRE_LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}

	return fallback
}
