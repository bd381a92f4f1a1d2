package optimizer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelstack/fuelstack/internal/constraint"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/optimizer"
)

// blockingClient lets tests control when each optimization returns.
type blockingClient struct {
	mu       sync.Mutex
	requests []optimizer.Request
	pending  []chan result
	started  chan struct{}
}

type result struct {
	plans []optimizer.MealPlan
	err   error
}

func newBlockingClient() *blockingClient {
	return &blockingClient{started: make(chan struct{}, 16)}
}

func (c *blockingClient) Optimize(_ context.Context, req optimizer.Request) ([]optimizer.MealPlan, error) {
	release := make(chan result)
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.pending = append(c.pending, release)
	c.mu.Unlock()
	c.started <- struct{}{}
	res := <-release
	return res.plans, res.err
}

func (c *blockingClient) release(i int, plans []optimizer.MealPlan, err error) {
	c.mu.Lock()
	ch := c.pending[i]
	c.mu.Unlock()
	ch <- result{plans: plans, err: err}
}

func validForm(t *testing.T) *constraint.Form {
	t.Helper()
	form := constraint.NewForm()
	form.SetMin(constraint.Calories, "800")
	form.SetMax(constraint.Calories, "1200")
	ok, _ := form.Submit()
	require.True(t, ok)
	return form
}

func TestOrchestrator_SubmitSuccess(t *testing.T) {
	client := newBlockingClient()
	orch := optimizer.NewOrchestrator(client, zerolog.Nop())

	assert.Equal(t, optimizer.StatusIdle, orch.State().Status)

	done, err := orch.Submit(context.Background(), 1, hall.Lunch, validForm(t))
	require.NoError(t, err)
	<-client.started
	assert.Equal(t, optimizer.StatusPending, orch.State().Status)

	plans := []optimizer.MealPlan{{TotalCaloriesKcal: 1000}}
	client.release(0, plans, nil)
	<-done

	state := orch.State()
	assert.Equal(t, optimizer.StatusSucceeded, state.Status)
	require.Len(t, state.Plans, 1)
	assert.Equal(t, 1000, state.Plans[0].TotalCaloriesKcal)
	assert.NoError(t, state.Err)
}

func TestOrchestrator_SubmitFailure(t *testing.T) {
	client := newBlockingClient()
	orch := optimizer.NewOrchestrator(client, zerolog.Nop())

	done, err := orch.Submit(context.Background(), 1, hall.Lunch, validForm(t))
	require.NoError(t, err)
	<-client.started
	client.release(0, nil, errors.New("503 from solver"))
	<-done

	state := orch.State()
	assert.Equal(t, optimizer.StatusFailed, state.Status)
	assert.Error(t, state.Err)
	assert.Empty(t, state.Plans)
}

func TestOrchestrator_GuardOnOutstandingErrors(t *testing.T) {
	client := newBlockingClient()
	orch := optimizer.NewOrchestrator(client, zerolog.Nop())

	form := constraint.NewForm()
	form.SetMin(constraint.Calories, "800")
	form.SetMax(constraint.Calories, "600")
	ok, _ := form.Submit()
	require.False(t, ok)

	done, err := orch.Submit(context.Background(), 1, hall.Lunch, form)
	assert.ErrorIs(t, err, optimizer.ErrConstraintErrors)
	assert.Nil(t, done)

	// No transition happened.
	assert.Equal(t, optimizer.StatusIdle, orch.State().Status)
	client.mu.Lock()
	assert.Empty(t, client.requests)
	client.mu.Unlock()
}

func TestOrchestrator_SecondSubmitWins(t *testing.T) {
	client := newBlockingClient()
	orch := optimizer.NewOrchestrator(client, zerolog.Nop())

	ctx := context.Background()

	doneFirst, err := orch.Submit(ctx, 1, hall.Lunch, validForm(t))
	require.NoError(t, err)
	<-client.started

	doneSecond, err := orch.Submit(ctx, 1, hall.Dinner, validForm(t))
	require.NoError(t, err)
	<-client.started

	// The second submission settles first, then the stale first response
	// arrives. The second must remain the observed state.
	client.release(1, []optimizer.MealPlan{{TotalCaloriesKcal: 900}}, nil)
	<-doneSecond
	client.release(0, []optimizer.MealPlan{{TotalCaloriesKcal: 2500}}, nil)
	<-doneFirst

	state := orch.State()
	assert.Equal(t, optimizer.StatusSucceeded, state.Status)
	require.Len(t, state.Plans, 1)
	assert.Equal(t, 900, state.Plans[0].TotalCaloriesKcal)
}

func TestOrchestrator_ResubmitAfterFailure(t *testing.T) {
	client := newBlockingClient()
	orch := optimizer.NewOrchestrator(client, zerolog.Nop())

	ctx := context.Background()

	done, err := orch.Submit(ctx, 1, hall.Lunch, validForm(t))
	require.NoError(t, err)
	<-client.started
	client.release(0, nil, errors.New("network down"))
	<-done
	require.Equal(t, optimizer.StatusFailed, orch.State().Status)

	// Failure → Pending directly, no explicit reset needed.
	done, err = orch.Submit(ctx, 1, hall.Lunch, validForm(t))
	require.NoError(t, err)
	<-client.started
	assert.Equal(t, optimizer.StatusPending, orch.State().Status)
	client.release(1, []optimizer.MealPlan{{}}, nil)
	<-done
	assert.Equal(t, optimizer.StatusSucceeded, orch.State().Status)
}

func TestBuildRequest(t *testing.T) {
	form := constraint.NewForm()
	form.SetMin(constraint.Calories, "800")
	form.SetMax(constraint.Calories, "1200")
	form.SetMax(constraint.Sodium, "2000")
	form.ToggleFlag(constraint.Vegan, true)
	form.SelectAllergen("peanuts", true)

	req := optimizer.BuildRequest(3, hall.Dinner, form)

	assert.Equal(t, 3, req.HallID)
	assert.Equal(t, hall.Dinner, req.Period)
	assert.Equal(t, []string{"vegan"}, req.Traits)
	assert.Equal(t, []string{"peanuts"}, req.Allergens)

	require.Len(t, req.Ranges, len(constraint.RangeKeys()))
	cal := req.Ranges[constraint.Calories]
	require.NotNil(t, cal.Min)
	require.NotNil(t, cal.Max)
	assert.Equal(t, 800.0, *cal.Min)
	assert.Equal(t, 1200.0, *cal.Max)

	sodium := req.Ranges[constraint.Sodium]
	assert.Nil(t, sodium.Min)
	require.NotNil(t, sodium.Max)
	assert.Equal(t, 2000.0, *sodium.Max)

	// Unset ranges still appear, fully absent.
	assert.True(t, req.Ranges[constraint.Protein].Empty())
}

func TestBuildRequest_EmptyFormHasNonNilSlices(t *testing.T) {
	form := constraint.NewForm()
	req := optimizer.BuildRequest(1, hall.Breakfast, form)

	assert.NotNil(t, req.Traits)
	assert.NotNil(t, req.Allergens)
	assert.Empty(t, req.Traits)
	assert.Empty(t, req.Allergens)
}
