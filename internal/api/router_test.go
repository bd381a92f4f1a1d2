package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelstack/fuelstack/internal/api"
	"github.com/fuelstack/fuelstack/internal/api/models"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
	"github.com/fuelstack/fuelstack/internal/optimizer"
	"github.com/fuelstack/fuelstack/internal/plans"
)

type fakeDining struct {
	halls []hall.Hall
	items []menu.Item
	plans []optimizer.MealPlan

	optimizeErr error
	lastRequest *optimizer.Request
}

func (f *fakeDining) ListHalls(_ context.Context) ([]hall.Hall, error) {
	return f.halls, nil
}

func (f *fakeDining) FetchMenu(_ context.Context, _ int, _ hall.MealPeriod) ([]menu.Item, error) {
	return f.items, nil
}

func (f *fakeDining) Optimize(_ context.Context, req optimizer.Request) ([]optimizer.MealPlan, error) {
	f.lastRequest = &req
	if f.optimizeErr != nil {
		return nil, f.optimizeErr
	}
	return f.plans, nil
}

func (f *fakeDining) Name() string { return "fake-dining" }

func testDining() *fakeDining {
	return &fakeDining{
		halls: []hall.Hall{
			{ID: 1, Name: "North Commons", MealsToday: []hall.MealPeriod{hall.Breakfast, hall.Lunch}},
			{ID: 2, Name: "South Commons"},
		},
		items: []menu.Item{
			{ID: 10, Name: "Scrambled Eggs", Station: "Grill"},
			{ID: 11, Name: "Oatmeal", Station: "Cereal"},
			{ID: 12, Name: "Bacon", Station: "Grill"},
		},
		plans: []optimizer.MealPlan{
			{
				Options: []optimizer.MealSelection{
					{ID: 10, Name: "Scrambled Eggs", Quantity: 2, Station: "Grill", CaloriesKcal: 280},
				},
				TotalCaloriesKcal: 280,
			},
		},
	}
}

func newTestRouter(dining *fakeDining) http.Handler {
	logger := zerolog.New(io.Discard)
	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "2026-01-01T00:00:00Z",
		Logger:    logger,
		HallService: hall.NewService(hall.ServiceConfig{
			Provider: dining,
			Logger:   logger,
		}),
		MenuService: menu.NewService(menu.ServiceConfig{
			Provider: dining,
			Logger:   logger,
		}),
		OptimizerClient: dining,
		PlanService: plans.NewService(plans.ServiceConfig{
			Repository: plans.NewInMemoryRepository(),
			Logger:     logger,
		}),
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)
	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ListHalls(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodGet, "/v1/halls", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HallListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Halls, 2)
	assert.Equal(t, "North Commons", resp.Halls[0].Name)
	assert.Equal(t, []string{"breakfast", "lunch"}, resp.Halls[0].MealPeriods)
	// Missing availability completes to every period.
	assert.Equal(t, []string{"breakfast", "lunch", "dinner"}, resp.Halls[1].MealPeriods)
}

func TestRouter_GetHall_NotFound(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodGet, "/v1/halls/99", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_GetMenu_GroupedByStation(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodGet, "/v1/halls/1/menu?meal_period=breakfast", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.MenuResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.HallID)
	assert.Equal(t, "breakfast", resp.MealPeriod)
	require.Len(t, resp.Stations, 2)
	assert.Equal(t, "Grill", resp.Stations[0].Name)
	require.Len(t, resp.Stations[0].Items, 2)
	assert.Equal(t, "Cereal", resp.Stations[1].Name)
}

func TestRouter_GetMenu_PeriodNotServed(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodGet, "/v1/halls/1/menu?meal_period=dinner", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_GetMenu_InvalidPeriod(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodGet, "/v1/halls/1/menu?meal_period=brunch", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func optimizeBody(t *testing.T, req models.OptimizeRequest) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestRouter_Optimize_Success(t *testing.T) {
	dining := testDining()
	router := newTestRouter(dining)

	body := optimizeBody(t, models.OptimizeRequest{
		HallID:     1,
		MealPeriod: "lunch",
		Constraints: map[string]models.RangeInput{
			"calories": {Min: "500", Max: "800"},
		},
		DietaryFlags: []string{"vegan"},
		Allergens:    []string{"Peanuts"},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/optimize", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Plans, 1)
	assert.Equal(t, 280, resp.Plans[0].TotalCaloriesKcal)

	require.NotNil(t, dining.lastRequest)
	assert.Equal(t, []string{"vegan"}, dining.lastRequest.Traits)
	assert.Equal(t, []string{"Peanuts"}, dining.lastRequest.Allergens)
}

func TestRouter_Optimize_MissingRequiredCalories(t *testing.T) {
	dining := testDining()
	router := newTestRouter(dining)

	body := optimizeBody(t, models.OptimizeRequest{
		HallID:     1,
		MealPeriod: "lunch",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/optimize", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "calories", problem.Errors[0].Field)
	assert.Equal(t, "Required", problem.Errors[0].Message)
	assert.Equal(t, "focus", problem.Errors[0].Code)

	assert.Nil(t, dining.lastRequest, "upstream must not be called on validation failure")
}

func TestRouter_Optimize_FirstInvalidInFormOrder(t *testing.T) {
	router := newTestRouter(testDining())

	body := optimizeBody(t, models.OptimizeRequest{
		HallID:     1,
		MealPeriod: "lunch",
		Constraints: map[string]models.RangeInput{
			"calories": {Min: "-1"},
			"sodium":   {Min: "-5"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/optimize", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 2)
	assert.Equal(t, "calories", problem.Errors[0].Field)
	assert.Equal(t, "focus", problem.Errors[0].Code)
	assert.Equal(t, "sodium", problem.Errors[1].Field)
	assert.Empty(t, problem.Errors[1].Code)
}

func TestRouter_Optimize_UpstreamFailure(t *testing.T) {
	dining := testDining()
	dining.optimizeErr = errors.New("upstream down")
	router := newTestRouter(dining)

	body := optimizeBody(t, models.OptimizeRequest{
		HallID:     1,
		MealPeriod: "lunch",
		Constraints: map[string]models.RangeInput{
			"calories": {Min: "500"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/optimize", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_Plans_SaveListDelete(t *testing.T) {
	router := newTestRouter(testDining())

	save := models.SavePlanRequest{
		HallID:     1,
		HallName:   "North Commons",
		MealPeriod: "lunch",
		Plan: models.MealPlan{
			Options: []models.MealSelection{
				{ID: 10, Name: "Scrambled Eggs", Quantity: 1, Station: "Grill"},
			},
			TotalCaloriesKcal: 140,
		},
	}
	body, err := json.Marshal(save)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/plans", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var saved models.SavedPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "/v1/plans/"+saved.ID, w.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/v1/plans", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var list models.SavedPlanListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Plans, 1)
	assert.Equal(t, saved.ID, list.Plans[0].ID)

	req = httptest.NewRequest(http.MethodDelete, "/v1/plans/"+saved.ID, http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/plans/"+saved.ID, http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RequireJSON(t *testing.T) {
	router := newTestRouter(testDining())

	req := httptest.NewRequest(http.MethodPost, "/v1/optimize", bytes.NewReader([]byte("x=1")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}
