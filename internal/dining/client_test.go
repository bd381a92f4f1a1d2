package dining_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelstack/fuelstack/internal/constraint"
	"github.com/fuelstack/fuelstack/internal/dining"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
	"github.com/fuelstack/fuelstack/internal/optimizer"
)

func TestClient_BacksHallAndMenuServices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/get-dining-halls":
			io.WriteString(w, `[{"id": 1, "name": "Bursley", "meals_today": ["lunch"]}]`)
		case "/menu":
			io.WriteString(w, `[{"id": 7, "name": "Burger", "station": "Grill"}]`)
		}
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	hallService := hall.NewService(hall.ServiceConfig{Provider: client, Logger: zerolog.Nop()})
	menuService := menu.NewService(menu.ServiceConfig{Provider: client, Logger: zerolog.Nop()})

	ctx := context.Background()

	halls, err := hallService.ListHalls(ctx)
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, "Bursley", halls[0].Name)

	groups, err := menuService.Grouped(ctx, 1, hall.Lunch)
	require.NoError(t, err)
	assert.Equal(t, []string{"Grill"}, groups.Stations())

	assert.Equal(t, dining.ProviderName, client.Name())
}

func TestClient_ListHalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-dining-halls", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 1, "name": "Bursley", "meals_today": ["breakfast", "lunch", "dinner"]},
			{"id": 2, "name": "South Quad", "meals_today": ["lunch"]},
			{"id": 3, "name": "Markley"}
		]`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	halls, err := client.ListHalls(context.Background())
	require.NoError(t, err)
	require.Len(t, halls, 3)

	assert.Equal(t, "Bursley", halls[0].Name)
	assert.Len(t, halls[0].MealsToday, 3)
	assert.Equal(t, []hall.MealPeriod{hall.Lunch}, halls[1].MealsToday)

	// Absent meals_today decodes to an empty availability, which the
	// navigator later widens to all periods.
	assert.Empty(t, halls[2].MealsToday)
}

func TestClient_ListHalls_SkipsUnknownPeriods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `[{"id": 1, "name": "Bursley", "meals_today": ["lunch", "brunch"]}]`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	halls, err := client.ListHalls(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []hall.MealPeriod{hall.Lunch}, halls[0].MealsToday)
}

func TestClient_FetchMenu(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("id"))
		assert.Equal(t, "dinner", r.URL.Query().Get("meal_period"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{
			"id": 17,
			"name": "Grilled Chicken",
			"station": "Grill",
			"portion_size": "1 breast",
			"serving_size_g": 140,
			"calories_kcal": 230,
			"protein_g": 43,
			"total_fat_g": 5,
			"saturated_fat_g": 1.5,
			"trans_fat_g": 0,
			"total_carbohydrate_g": 0,
			"sugars_g": 0,
			"sodium_mg": 380,
			"dietary_fiber_g": 0,
			"cholesterol_mg": 120,
			"traits": ["halal"],
			"allergens": []
		}]`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	items, err := client.FetchMenu(context.Background(), 4, hall.Dinner)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, 17, item.ID)
	assert.Equal(t, "Grilled Chicken", item.Name)
	assert.Equal(t, "Grill", item.Station)
	assert.Equal(t, "1 breast", item.PortionSize)
	assert.Equal(t, 140.0, item.ServingSizeGrams)
	assert.Equal(t, 230.0, item.Nutrients.CaloriesKcal)
	assert.Equal(t, 43.0, item.Nutrients.ProteinG)
	assert.Equal(t, 1.5, item.Nutrients.SaturatedFatG)
	assert.Equal(t, 380.0, item.Nutrients.SodiumMg)
	assert.Equal(t, []string{"halal"}, item.Traits)
}

func TestClient_FetchMenu_StatusErrorPreservesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail": "no menu for that hall"}`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	_, err := client.FetchMenu(context.Background(), 99, hall.Lunch)
	require.Error(t, err)

	var statusErr *dining.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "no menu for that hall")
}

func TestClient_Optimize_WirePayload(t *testing.T) {
	var body map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/optimize-meal", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	form := constraint.NewForm()
	form.SetMin(constraint.Calories, "800")
	form.SetMax(constraint.Calories, "1200")
	form.ToggleFlag(constraint.Vegan, true)
	form.SelectAllergen("peanuts", true)

	req := optimizer.BuildRequest(1, hall.Lunch, form)
	_, err := client.Optimize(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, `1`, string(body["dining_hall_id"]))
	assert.JSONEq(t, `"lunch"`, string(body["meal_period"]))
	assert.JSONEq(t, `800`, string(body["calories_min"]))
	assert.JSONEq(t, `1200`, string(body["calories_max"]))
	assert.JSONEq(t, `["vegan"]`, string(body["traits"]))
	assert.JSONEq(t, `["peanuts"]`, string(body["allergens"]))

	// Unconstrained bounds are explicit nulls, never omitted.
	for _, key := range []string{
		"protein_min", "protein_max",
		"carb_min", "carb_max",
		"fat_min", "fat_max",
		"sugars_min", "sugars_max",
		"sodium_min", "sodium_max",
	} {
		raw, ok := body[key]
		require.True(t, ok, "missing key %s", key)
		assert.JSONEq(t, `null`, string(raw), "key %s", key)
	}
}

func TestClient_Optimize_EmptyFormRoundTrip(t *testing.T) {
	var body map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	req := optimizer.BuildRequest(2, hall.Breakfast, constraint.NewForm())
	_, err := client.Optimize(context.Background(), req)
	require.NoError(t, err)

	assert.JSONEq(t, `[]`, string(body["allergens"]))
	assert.JSONEq(t, `[]`, string(body["traits"]))
	for _, field := range constraint.Fields() {
		assert.JSONEq(t, `null`, string(body[field.WireMin]), "key %s", field.WireMin)
		assert.JSONEq(t, `null`, string(body[field.WireMax]), "key %s", field.WireMax)
	}
}

func TestClient_Optimize_ParsesPlans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `[{
			"options": [
				{"name": "Grilled Chicken", "id": 17, "components": [], "quantity": 2, "station": "Grill",
				 "calories_kcal": 230, "protein_g": 43, "total_carbohydrate_g": 0, "total_fat_g": 5},
				{"name": "Brown Rice", "id": 32, "components": ["rice", "olive oil"], "quantity": 1, "station": "Wild Fire Maize",
				 "calories_kcal": 215, "protein_g": 5, "total_carbohydrate_g": 45, "total_fat_g": 2}
			],
			"total_calories_kcal": 675,
			"total_protein_g": 91,
			"total_carbohydrate_g": 45,
			"total_fat_g": 12
		}]`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	plans, err := client.Optimize(context.Background(), optimizer.BuildRequest(1, hall.Lunch, constraint.NewForm()))
	require.NoError(t, err)
	require.Len(t, plans, 1)

	plan := plans[0]
	assert.Equal(t, 675, plan.TotalCaloriesKcal)
	assert.Equal(t, 91, plan.TotalProteinG)
	require.Len(t, plan.Options, 2)
	assert.Equal(t, "Grilled Chicken", plan.Options[0].Name)
	assert.Equal(t, 2, plan.Options[0].Quantity)
	assert.Equal(t, []string{"rice", "olive oil"}, plan.Options[1].Components)
}

func TestClient_Optimize_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail": "infeasible constraints"}`)
	}))
	defer server.Close()

	client := dining.NewClient(dining.ClientConfig{BaseURL: server.URL})

	_, err := client.Optimize(context.Background(), optimizer.BuildRequest(1, hall.Lunch, constraint.NewForm()))
	require.Error(t, err)

	var statusErr *dining.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "infeasible constraints")
}
