package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault tests the built-in defaults
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
}

// TestLoad tests layered loading: defaults, yaml file, env overrides
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "lossdev.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("server:\n  port: 9090\nlogging:\n  level: debug\n"), 0644))

	t.Setenv("LOSSDEV_CONFIG_FILE", configFile)
	t.Setenv("LOSSDEV_LOGGING_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)       // from file
	assert.Equal(t, "debug", cfg.Logging.Level)  // from file
	assert.Equal(t, "text", cfg.Logging.Format)  // from env
	assert.True(t, cfg.RateLimit.Enabled)        // default

	// Relative paths resolve against the working directory.
	assert.True(t, filepath.IsAbs(cfg.Paths.DataDir))
	assert.True(t, filepath.IsAbs(cfg.Paths.ReportsDir))
}

// TestLoadValidation tests configuration validation failures
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid port", "LOSSDEV_SERVER_PORT", "0"},
		{"invalid log level", "LOSSDEV_LOGGING_LEVEL", "verbose"},
		{"invalid log format", "LOSSDEV_LOGGING_FORMAT", "xml"},
		{"invalid sample ratio", "LOSSDEV_TRACING_SAMPLE_RATIO", "2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOSSDEV_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// TestNewLogger tests logger construction from config
func TestNewLogger(t *testing.T) {
	logger := LoggingConfig{Level: "debug", Format: "text"}.NewLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = LoggingConfig{Level: "error", Format: "json"}.NewLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
