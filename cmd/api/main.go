// Package main provides the entrypoint for the air quality index API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/breatheroute/airindex/internal/airquality"
	"github.com/breatheroute/airindex/internal/api"
	"github.com/breatheroute/airindex/internal/api/middleware"
	"github.com/breatheroute/airindex/internal/assessment"
	"github.com/breatheroute/airindex/internal/config"
	"github.com/breatheroute/airindex/internal/observability"
	"github.com/breatheroute/airindex/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("airindex api exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Str("default_standard", string(cfg.DefaultStandard)).
		Msg("starting airindex API")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    telemetry.DefaultServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    cfg.OTelSampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if tp.Enabled() {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Float64("sample_ratio", cfg.OTelSampleRatio).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	service := assessment.NewService(assessment.ServiceConfig{
		Logger:  log,
		Metrics: observability.NewMetrics(prometheus.DefaultRegisterer),
		Locator: airquality.NewLocator(airquality.LocatorConfig{
			MaxDistanceKm: cfg.MaxStationDistanceKm,
			Clock:         clock,
		}),
		DefaultStandard: cfg.DefaultStandard,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		Service:            service,
		Metrics:            httpMetrics,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequireTLS:         cfg.RequireTLS,
		Clock:              clock,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.LogLevel)

	var base zerolog.Logger
	if cfg.LogFormat == "console" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		base = zerolog.New(os.Stdout)
	}

	return base.With().
		Timestamp().
		Str("service", telemetry.DefaultServiceName).
		Str("version", Version).
		Logger()
}
