package menu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/hall"
)

// Provider is a source of menu data.
type Provider interface {
	// FetchMenu fetches today's menu for a dining hall and meal period.
	FetchMenu(ctx context.Context, hallID int, period hall.MealPeriod) ([]Item, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the menu service.
type ServiceConfig struct {
	// Provider is the menu data source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long a fetched menu stays fresh (default: 10 minutes).
	// Menus change between meal periods, not minute to minute.
	CacheTTL time.Duration
}

// Service fetches menus with a cache keyed by (hall, period).
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedMenu
}

type cachedMenu struct {
	items     []Item
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new menu service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedMenu),
	}
}

// Menu returns today's menu for a hall and period, cached per key.
func (s *Service) Menu(ctx context.Context, hallID int, period hall.MealPeriod) ([]Item, error) {
	key := cacheKey(hallID, period)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		items := copyItems(cached.items)
		s.mu.RUnlock()
		return items, nil
	}
	s.mu.RUnlock()

	return s.fetchMenu(ctx, hallID, period, key)
}

// Grouped returns today's menu grouped by station.
func (s *Service) Grouped(ctx context.Context, hallID int, period hall.MealPeriod) (StationGroups, error) {
	items, err := s.Menu(ctx, hallID, period)
	if err != nil {
		return StationGroups{}, err
	}
	return GroupByStation(items), nil
}

func (s *Service) fetchMenu(ctx context.Context, hallID int, period hall.MealPeriod, key string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		return copyItems(cached.items), nil
	}

	s.logger.Debug().
		Int("hall_id", hallID).
		Str("meal_period", string(period)).
		Str("provider", s.provider.Name()).
		Msg("fetching menu")

	items, err := s.provider.FetchMenu(ctx, hallID, period)
	if err != nil {
		s.logger.Error().Err(err).
			Int("hall_id", hallID).
			Str("meal_period", string(period)).
			Msg("failed to fetch menu")
		return nil, fmt.Errorf("fetch menu for hall %d %s: %w", hallID, period, err)
	}

	now := time.Now()
	s.cache[key] = &cachedMenu{
		items:     items,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	s.logger.Info().
		Int("hall_id", hallID).
		Str("meal_period", string(period)).
		Int("items", len(items)).
		Msg("menu fetched")

	return copyItems(items), nil
}

func cacheKey(hallID int, period hall.MealPeriod) string {
	return fmt.Sprintf("%d:%s", hallID, period)
}

func copyItems(items []Item) []Item {
	cpy := make([]Item, len(items))
	copy(cpy, items)
	return cpy
}
