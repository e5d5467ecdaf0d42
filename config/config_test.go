package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.ArtifactTTL)
	assert.Equal(t, int64(32), cfg.MaxConcurrentRuns)
	assert.Equal(t, "mock", cfg.DefaultProvider)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AGENTWIRE_PORT", "9090")
	t.Setenv("AGENTWIRE_ARTIFACT_TTL", "30m")
	t.Setenv("AGENTWIRE_MAX_CONCURRENT_RUNS", "4")
	t.Setenv("AGENTWIRE_PROVIDER", "anthropic")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.ArtifactTTL)
	assert.Equal(t, int64(4), cfg.MaxConcurrentRuns)
	assert.Equal(t, "anthropic", cfg.DefaultProvider)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("AGENTWIRE_ARTIFACT_TTL", "not-a-duration")
	t.Setenv("AGENTWIRE_MAX_CONCURRENT_RUNS", "lots")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.ArtifactTTL)
	assert.Equal(t, int64(32), cfg.MaxConcurrentRuns)
}
