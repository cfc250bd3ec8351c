// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/breatheroute/airindex/internal/aqi"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port            string
	Environment     string
	LogLevel        zerolog.Level
	LogFormat       string
	ShutdownTimeout time.Duration

	OTelEnabled     bool
	OTLPEndpoint    string
	OTelSampleRatio float64

	CORSAllowedOrigins []string
	RequireTLS         bool

	// DefaultStandard is used when a request does not name one.
	DefaultStandard aqi.StandardName

	// MaxStationDistanceKm bounds nearest-station lookups.
	MaxStationDistanceKm float64
}

// Load reads configuration from environment variables, applying defaults
// where unset. Variables from a .env file in the working directory are
// loaded first without overriding ones already set.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are ignored.
func LoadFiles(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	level, err := zerolog.ParseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	logFormat := envOrDefault("LOG_FORMAT", "json")
	if logFormat != "json" && logFormat != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or console", logFormat)
	}

	shutdownTimeout, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "30s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	std, err := aqi.StandardByName(aqi.StandardName(strings.ToLower(os.Getenv("DEFAULT_STANDARD"))))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_STANDARD: %w", err)
	}

	maxDistance, err := strconv.ParseFloat(envOrDefault("MAX_STATION_DISTANCE_KM", "50"), 64)
	if err != nil || maxDistance <= 0 {
		return nil, errors.New("invalid MAX_STATION_DISTANCE_KM")
	}

	sampleRatio, err := strconv.ParseFloat(envOrDefault("OTEL_TRACES_SAMPLER_ARG", "1"), 64)
	if err != nil || sampleRatio <= 0 || sampleRatio > 1 {
		return nil, errors.New("invalid OTEL_TRACES_SAMPLER_ARG")
	}

	return &Config{
		Port:                 envOrDefault("APP_PORT", "8080"),
		Environment:          envOrDefault("APP_ENV", "development"),
		LogLevel:             level,
		LogFormat:            logFormat,
		ShutdownTimeout:      shutdownTimeout,
		OTelEnabled:          os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:         envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelSampleRatio:      sampleRatio,
		CORSAllowedOrigins:   splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		RequireTLS:           os.Getenv("REQUIRE_TLS") == "true",
		DefaultStandard:      std.Name(),
		MaxStationDistanceKm: maxDistance,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
