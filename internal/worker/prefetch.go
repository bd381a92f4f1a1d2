// Package worker provides background cache warming for FuelStack.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
)

// PrefetchConfig holds configuration for the menu prefetch job.
type PrefetchConfig struct {
	// Concurrency is the number of concurrent menu fetches.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each fetch operation.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultPrefetchConfig returns the default prefetch configuration.
func DefaultPrefetchConfig() PrefetchConfig {
	return PrefetchConfig{
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// PrefetchJobConfig holds configuration for creating a PrefetchJob.
type PrefetchJobConfig struct {
	Config      PrefetchConfig
	Logger      zerolog.Logger
	HallService *hall.Service
	MenuService *menu.Service
}

// PrefetchJob warms the menu cache by fetching today's menu for every
// dining hall and every meal period it serves, so the first user of the
// day hits warm caches.
type PrefetchJob struct {
	config PrefetchConfig
	logger zerolog.Logger
	halls  *hall.Service
	menus  *menu.Service

	metrics *PrefetchMetrics
}

// PrefetchMetrics tracks prefetch job statistics across runs.
type PrefetchMetrics struct {
	mu sync.RWMutex

	TotalRuns       int64
	MenusFetched    int64
	MenusFailed     int64
	LastRunAt       time.Time
	LastRunDuration time.Duration
}

// NewPrefetchJob creates a new menu prefetch job.
func NewPrefetchJob(cfg PrefetchJobConfig) *PrefetchJob {
	config := cfg.Config
	if config.Concurrency == 0 {
		config.Concurrency = DefaultPrefetchConfig().Concurrency
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultPrefetchConfig().Timeout
	}

	return &PrefetchJob{
		config:  config,
		logger:  cfg.Logger,
		halls:   cfg.HallService,
		menus:   cfg.MenuService,
		metrics: &PrefetchMetrics{},
	}
}

// PrefetchResult summarizes one prefetch run.
type PrefetchResult struct {
	StartTime  time.Time
	Duration   time.Duration
	TotalMenus int
	Fetched    int
	Failed     int
	Errors     []PrefetchError
}

// PrefetchError records one failed menu fetch.
type PrefetchError struct {
	HallID int
	Period hall.MealPeriod
	Error  string
}

// menuKey identifies one (hall, period) menu to fetch.
type menuKey struct {
	hallID int
	period hall.MealPeriod
}

// Run executes one prefetch pass over every hall and served period.
func (j *PrefetchJob) Run(ctx context.Context) *PrefetchResult {
	start := time.Now()
	result := &PrefetchResult{StartTime: start}

	halls, err := j.halls.ListHalls(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("prefetch: failed to list dining halls")
		result.Failed = 1
		result.Errors = append(result.Errors, PrefetchError{Error: err.Error()})
		result.Duration = time.Since(start)
		j.updateMetrics(result)
		return result
	}

	var keys []menuKey
	for _, dh := range halls {
		for _, period := range hall.OfferedPeriods(dh) {
			keys = append(keys, menuKey{hallID: dh.ID, period: period})
		}
	}
	result.TotalMenus = len(keys)

	j.logger.Info().
		Int("halls", len(halls)).
		Int("menus", len(keys)).
		Int("concurrency", j.config.Concurrency).
		Msg("starting menu prefetch")

	work := make(chan menuKey, len(keys))
	results := make(chan PrefetchError, len(keys))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.prefetchWorker(ctx, work, results)
		}()
	}

	for _, key := range keys {
		work <- key
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	for pe := range results {
		if pe.Error == "" {
			result.Fetched++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, pe)
		}
	}

	result.Duration = time.Since(start)
	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("fetched", result.Fetched).
		Int("failed", result.Failed).
		Msg("menu prefetch completed")

	return result
}

func (j *PrefetchJob) prefetchWorker(ctx context.Context, work <-chan menuKey, results chan<- PrefetchError) {
	for key := range work {
		select {
		case <-ctx.Done():
			results <- PrefetchError{HallID: key.hallID, Period: key.period, Error: ctx.Err().Error()}
			continue
		default:
		}

		fetchCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
		_, err := j.menus.Menu(fetchCtx, key.hallID, key.period)
		cancel()

		if err != nil {
			j.logger.Warn().Err(err).
				Int("hall_id", key.hallID).
				Str("meal_period", string(key.period)).
				Msg("prefetch: menu fetch failed")
			results <- PrefetchError{HallID: key.hallID, Period: key.period, Error: err.Error()}
			continue
		}
		results <- PrefetchError{HallID: key.hallID, Period: key.period}
	}
}

// RunPeriodically runs prefetch passes on the given interval until the
// context is cancelled. The first pass runs immediately.
func (j *PrefetchJob) RunPeriodically(ctx context.Context, interval time.Duration) {
	j.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("menu prefetch stopped")
			return
		case <-ticker.C:
			j.Run(ctx)
		}
	}
}

func (j *PrefetchJob) updateMetrics(result *PrefetchResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.MenusFetched += int64(result.Fetched)
	j.metrics.MenusFailed += int64(result.Failed)
	j.metrics.LastRunAt = result.StartTime
	j.metrics.LastRunDuration = result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *PrefetchJob) GetMetrics() PrefetchMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return PrefetchMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		MenusFetched:    j.metrics.MenusFetched,
		MenusFailed:     j.metrics.MenusFailed,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
	}
}
