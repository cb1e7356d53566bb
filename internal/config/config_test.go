package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("CATFORM_DEFAULT_MAGTYPE", "")
	t.Setenv("CATFORM_DEPTH_IN_KM", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.DefaultMagType)
	assert.True(t, cfg.DepthInKm)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CATFORM_DEFAULT_MAGTYPE", "Ml")
	t.Setenv("CATFORM_DEPTH_IN_KM", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "Ml", cfg.DefaultMagType)
	assert.False(t, cfg.DepthInKm)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("bad depth flag", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("CATFORM_DEPTH_IN_KM", "sometimes")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CATFORM_DEPTH_IN_KM")
	})

	t.Run("bad log format", func(t *testing.T) {
		t.Setenv("CATFORM_DEPTH_IN_KM", "")
		t.Setenv("LOG_FORMAT", "yaml")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_FORMAT")
	})
}
