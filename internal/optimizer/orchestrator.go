package optimizer

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fuelstack/fuelstack/internal/constraint"
	"github.com/fuelstack/fuelstack/internal/hall"
)

// ErrConstraintErrors is returned when Submit is called while the form
// still holds validation errors. The orchestrator does not transition
// and does not re-validate; clearing the errors is the caller's job.
var ErrConstraintErrors = errors.New("constraint form has outstanding errors")

// Client submits optimization requests to the solver.
type Client interface {
	Optimize(ctx context.Context, req Request) ([]MealPlan, error)
}

// Status is the lifecycle state of the tracked submission.
type Status string

// Submission lifecycle states.
const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is an immutable snapshot of the orchestrator.
type State struct {
	Status Status

	// Plans holds the result while Status is StatusSucceeded.
	Plans []MealPlan

	// Err holds the failure while Status is StatusFailed. Upstream
	// status and body text are preserved inside for diagnostics.
	Err error
}

// Orchestrator tracks one meal optimization submission at a time.
// A new Submit supersedes the previous one: whichever response arrives
// for an earlier submission is discarded, so the state always reflects
// the latest submit by submission order, not arrival order.
type Orchestrator struct {
	client Client
	logger zerolog.Logger

	mu    sync.Mutex
	gen   uint64
	state State
}

// NewOrchestrator creates an idle orchestrator.
func NewOrchestrator(client Client, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		client: client,
		logger: logger,
		state:  State{Status: StatusIdle},
	}
}

// Submit builds a request from the form and selection context and sends
// it to the solver in the background. The returned channel closes when
// this submission settles, whether its result was applied or discarded.
//
// Submit is a no-op returning ErrConstraintErrors while the form holds
// outstanding validation errors; no transition happens in that case.
func (o *Orchestrator) Submit(ctx context.Context, hallID int, period hall.MealPeriod, form *constraint.Form) (<-chan struct{}, error) {
	if form.HasErrors() {
		return nil, ErrConstraintErrors
	}

	req := BuildRequest(hallID, period, form)

	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.state = State{Status: StatusPending}
	o.mu.Unlock()

	o.logger.Info().
		Int("hall_id", hallID).
		Str("meal_period", string(period)).
		Int("traits", len(req.Traits)).
		Int("allergens", len(req.Allergens)).
		Msg("submitting meal optimization")

	done := make(chan struct{})
	go func() {
		defer close(done)
		plans, err := o.client.Optimize(ctx, req)
		o.complete(gen, plans, err)
	}()
	return done, nil
}

// State returns the current submission state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := o.state
	if st.Plans != nil {
		plans := make([]MealPlan, len(st.Plans))
		copy(plans, st.Plans)
		st.Plans = plans
	}
	return st
}

func (o *Orchestrator) complete(gen uint64, plans []MealPlan, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.gen {
		o.logger.Debug().Msg("discarding superseded optimization response")
		return
	}

	if err != nil {
		o.logger.Error().Err(err).Msg("meal optimization failed")
		o.state = State{Status: StatusFailed, Err: err}
		return
	}

	o.logger.Info().Int("plans", len(plans)).Msg("meal optimization succeeded")
	o.state = State{Status: StatusSucceeded, Plans: plans}
}
