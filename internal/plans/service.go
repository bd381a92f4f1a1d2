package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/optimizer"
)

// Service manages saved meal plan history.
type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

// ServiceConfig holds configuration for the plans service.
type ServiceConfig struct {
	// Repository is the saved plan store.
	Repository Repository

	// Logger for service operations.
	Logger zerolog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewService creates a new plans service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		now:    now,
	}
}

// Save stores a generated plan with its selection context and returns
// the stored record.
func (s *Service) Save(ctx context.Context, hallID int, hallName string, period hall.MealPeriod, plan optimizer.MealPlan) (*SavedPlan, error) {
	saved := &SavedPlan{
		ID:        "plan_" + uuid.New().String(),
		HallID:    hallID,
		HallName:  hallName,
		Period:    period,
		Plan:      plan,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	s.logger.Info().
		Str("plan_id", saved.ID).
		Int("hall_id", hallID).
		Str("meal_period", string(period)).
		Msg("meal plan saved")

	return saved, nil
}

// Get retrieves a saved plan by ID.
func (s *Service) Get(ctx context.Context, id string) (*SavedPlan, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves saved plans, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*SavedPlan, error) {
	return s.repo.List(ctx, opts)
}

// Delete removes a saved plan by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("plan_id", id).Msg("meal plan deleted")
	return nil
}
