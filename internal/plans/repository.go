package plans

import "context"

// ListOptions contains options for listing saved plans.
type ListOptions struct {
	// Limit caps the number of returned plans (default 50).
	Limit int
}

// Repository defines the interface for saved plan persistence.
type Repository interface {
	// Get retrieves a saved plan by ID.
	// Returns ErrPlanNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*SavedPlan, error)

	// List retrieves saved plans, newest first.
	List(ctx context.Context, opts ListOptions) ([]*SavedPlan, error)

	// Create stores a new saved plan.
	Create(ctx context.Context, plan *SavedPlan) error

	// Delete removes a saved plan by ID.
	// Returns ErrPlanNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error
}
