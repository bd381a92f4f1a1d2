// Package optimizer builds meal optimization requests and tracks the
// lifecycle of submissions to the optimization service.
package optimizer

import (
	"github.com/fuelstack/fuelstack/internal/constraint"
	"github.com/fuelstack/fuelstack/internal/hall"
)

// Request is one meal optimization request, built once per submit.
// Traits and Allergens are always non-nil so the wire encoding carries
// empty arrays rather than omitted keys.
type Request struct {
	HallID    int
	Period    hall.MealPeriod
	Ranges    map[constraint.RangeKey]constraint.RangeValue
	Traits    []string
	Allergens []string
}

// MealSelection is one chosen item within a meal plan.
type MealSelection struct {
	ID         int
	Name       string
	Quantity   int
	Station    string
	Components []string

	CaloriesKcal       int
	ProteinG           int
	TotalCarbohydrateG int
	TotalFatG          int
}

// MealPlan is one candidate meal combination returned by the optimizer,
// with aggregated nutrition totals. The combination itself is opaque to
// this package; the solver owns its contents.
type MealPlan struct {
	Options []MealSelection

	TotalCaloriesKcal  int
	TotalProteinG      int
	TotalCarbohydrateG int
	TotalFatG          int
}

// BuildRequest serializes a validated form plus the selection context
// into a Request. Every range key appears in Ranges, absent bounds as
// nil pointers; dietary flags flatten into Traits.
func BuildRequest(hallID int, period hall.MealPeriod, form *constraint.Form) Request {
	ranges := make(map[constraint.RangeKey]constraint.RangeValue, len(constraint.RangeKeys()))
	for _, key := range constraint.RangeKeys() {
		ranges[key] = form.Range(key)
	}

	traits := make([]string, 0, len(form.EnabledFlags()))
	for _, flag := range form.EnabledFlags() {
		traits = append(traits, string(flag))
	}

	allergens := make([]string, 0, len(form.SelectedAllergens()))
	allergens = append(allergens, form.SelectedAllergens()...)

	return Request{
		HallID:    hallID,
		Period:    period,
		Ranges:    ranges,
		Traits:    traits,
		Allergens: allergens,
	}
}
