// Package main provides the entrypoint for the FuelStack prefetch worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/dining"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
	"github.com/fuelstack/fuelstack/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "fuelstack-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting FuelStack worker")

	// Worker also exposes a health endpoint for the container platform
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	diningBaseURL := os.Getenv("DINING_API_BASE_URL")
	if diningBaseURL == "" {
		log.Fatal().Msg("DINING_API_BASE_URL is required")
	}

	interval := 15 * time.Minute
	if raw := os.Getenv("PREFETCH_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Err(err).Str("value", raw).Msg("invalid PREFETCH_INTERVAL")
		}
		interval = parsed
	}

	diningClient := dining.NewClient(dining.ClientConfig{
		BaseURL: diningBaseURL,
	})

	hallService := hall.NewService(hall.ServiceConfig{
		Provider: diningClient,
		Logger:   log,
	})

	menuService := menu.NewService(menu.ServiceConfig{
		Provider: diningClient,
		Logger:   log,
		// Keep warmed menus around until the next prefetch pass.
		CacheTTL: interval + 5*time.Minute,
	})

	job := worker.NewPrefetchJob(worker.PrefetchJobConfig{
		Logger:      log,
		HallService: hallService,
		MenuService: menuService,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		m := job.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":%q,"runs":%d,"fetched":%d,"failed":%d}`,
			Version, m.TotalRuns, m.MenusFetched, m.MenusFailed)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	go func() {
		log.Info().Dur("interval", interval).Msg("menu prefetch loop started")
		job.RunPeriodically(ctx, interval)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
