package plans

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local runs without a database.
type InMemoryRepository struct {
	mu    sync.RWMutex
	plans map[string]*SavedPlan
}

// NewInMemoryRepository creates a new in-memory saved plan repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		plans: make(map[string]*SavedPlan),
	}
}

// Get retrieves a saved plan by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*SavedPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}

	cpy := *p
	return &cpy, nil
}

// List retrieves saved plans, newest first.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*SavedPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	all := make([]*SavedPlan, 0, len(r.plans))
	for _, p := range r.plans {
		cpy := *p
		all = append(all, &cpy)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Create stores a new saved plan.
func (r *InMemoryRepository) Create(_ context.Context, plan *SavedPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *plan
	r.plans[plan.ID] = &cpy
	return nil
}

// Delete removes a saved plan by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}
