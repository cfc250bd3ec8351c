package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breatheroute/airindex/internal/aqi"
	"github.com/breatheroute/airindex/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.LoadFiles()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, 1.0, cfg.OTelSampleRatio)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RequireTLS)
	assert.Equal(t, aqi.StandardEPA, cfg.DefaultStandard)
	assert.Equal(t, 50.0, cfg.MaxStationDistanceKm)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://aqi.example.org, http://localhost:5173")
	t.Setenv("REQUIRE_TLS", "true")
	t.Setenv("DEFAULT_STANDARD", "NAQI")
	t.Setenv("MAX_STATION_DISTANCE_KM", "25.5")

	cfg, err := config.LoadFiles()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.Equal(t, 0.1, cfg.OTelSampleRatio)
	assert.Equal(t, []string{"https://aqi.example.org", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.RequireTLS)
	assert.Equal(t, aqi.StandardNAQI, cfg.DefaultStandard)
	assert.Equal(t, 25.5, cfg.MaxStationDistanceKm)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"log level", "LOG_LEVEL", "loud"},
		{"log format", "LOG_FORMAT", "xml"},
		{"shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
		{"standard", "DEFAULT_STANDARD", "who"},
		{"station distance", "MAX_STATION_DISTANCE_KM", "far"},
		{"zero station distance", "MAX_STATION_DISTANCE_KM", "0"},
		{"sample ratio", "OTEL_TRACES_SAMPLER_ARG", "2"},
		{"zero sample ratio", "OTEL_TRACES_SAMPLER_ARG", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.LoadFiles()
			assert.Error(t, err)
		})
	}
}

func TestLoadFiles_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nLOG_LEVEL=warn\n"), 0o600))

	// Already-set variables win over the file.
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("APP_PORT", "")
	require.NoError(t, os.Unsetenv("APP_PORT"))
	t.Cleanup(func() { _ = os.Unsetenv("APP_PORT") })

	cfg, err := config.LoadFiles(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, zerolog.ErrorLevel, cfg.LogLevel)
}

func TestLoadFiles_MissingFileIgnored(t *testing.T) {
	cfg, err := config.LoadFiles(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}
