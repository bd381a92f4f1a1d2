package hall

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider is a source of dining hall listings.
type Provider interface {
	// ListHalls fetches every dining hall with its periods served today.
	ListHalls(ctx context.Context) ([]Hall, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the hall listing service.
type ServiceConfig struct {
	// Provider is the hall listing source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long a fetched listing stays fresh (default: 5 minutes).
	// Listings change at most daily, so this is conservative.
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving a stale listing on provider errors
	// (default: 1 hour).
	StaleIfErrorTTL time.Duration
}

// Service provides the dining hall listing with caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu        sync.RWMutex
	halls     []Hall
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new hall listing service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 1 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
	}
}

// ListHalls returns every dining hall, cached.
func (s *Service) ListHalls(ctx context.Context) ([]Hall, error) {
	s.mu.RLock()
	if s.halls != nil && time.Now().Before(s.expiresAt) {
		halls := copyHalls(s.halls)
		s.mu.RUnlock()
		return halls, nil
	}
	s.mu.RUnlock()

	return s.fetchHalls(ctx)
}

// GetHall returns a single hall by ID.
func (s *Service) GetHall(ctx context.Context, id int) (*Hall, error) {
	halls, err := s.ListHalls(ctx)
	if err != nil {
		return nil, err
	}
	for i := range halls {
		if halls[i].ID == id {
			h := halls[i]
			return &h, nil
		}
	}
	return nil, ErrHallNotFound
}

// fetchHalls fetches the listing from the provider and updates the cache.
func (s *Service) fetchHalls(ctx context.Context) ([]Hall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock
	if s.halls != nil && time.Now().Before(s.expiresAt) {
		return copyHalls(s.halls), nil
	}

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Msg("fetching dining hall listing")

	halls, err := s.provider.ListHalls(ctx)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider", s.provider.Name()).
			Msg("failed to fetch dining hall listing")

		// Serve stale on error if within the stale window
		if s.halls != nil && time.Since(s.fetchedAt) < s.staleIfErrorTTL {
			s.logger.Warn().
				Time("fetched_at", s.fetchedAt).
				Msg("serving stale dining hall listing")
			return copyHalls(s.halls), nil
		}
		return nil, fmt.Errorf("list dining halls: %w", err)
	}

	now := time.Now()
	s.halls = halls
	s.fetchedAt = now
	s.expiresAt = now.Add(s.cacheTTL)

	s.logger.Info().
		Int("halls", len(halls)).
		Msg("dining hall listing refreshed")

	return copyHalls(halls), nil
}

func copyHalls(halls []Hall) []Hall {
	cpy := make([]Hall, len(halls))
	copy(cpy, halls)
	return cpy
}
