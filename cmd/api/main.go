// Package main provides the entrypoint for the FuelStack API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/api"
	"github.com/fuelstack/fuelstack/internal/api/handler"
	"github.com/fuelstack/fuelstack/internal/api/middleware"
	"github.com/fuelstack/fuelstack/internal/database"
	"github.com/fuelstack/fuelstack/internal/dining"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
	"github.com/fuelstack/fuelstack/internal/plans"
	"github.com/fuelstack/fuelstack/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "fuelstack-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting FuelStack API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	diningBaseURL := os.Getenv("DINING_API_BASE_URL")
	if diningBaseURL == "" {
		log.Fatal().Msg("DINING_API_BASE_URL is required")
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Saved plan storage: Postgres by default, in-memory when DB_DISABLED
	// (local development without a database).
	var planRepo plans.Repository
	if os.Getenv("DB_DISABLED") == "true" {
		planRepo = plans.NewInMemoryRepository()
		log.Warn().Msg("database disabled - saved plans are in-memory only")
	} else {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		planRepo = plans.NewPostgresRepository(pool)
	}

	// Initialize the dining API client and the services on top of it
	diningClient := dining.NewClient(dining.ClientConfig{
		BaseURL: diningBaseURL,
	})
	log.Info().Str("base_url", diningBaseURL).Msg("dining API client initialized")

	hallService := hall.NewService(hall.ServiceConfig{
		Provider: diningClient,
		Logger:   log,
	})

	menuService := menu.NewService(menu.ServiceConfig{
		Provider: diningClient,
		Logger:   log,
	})

	planService := plans.NewService(plans.ServiceConfig{
		Repository: planRepo,
		Logger:     log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		BuildTime:       BuildTime,
		Logger:          log,
		Metrics:         metrics,
		HallService:     hallService,
		MenuService:     menuService,
		OptimizerClient: diningClient,
		PlanService:     planService,
		Upstreams:       []handler.HealthChecker{diningClient},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
