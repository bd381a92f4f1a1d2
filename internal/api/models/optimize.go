package models

import "github.com/fuelstack/fuelstack/internal/optimizer"

// RangeInput carries the raw text a user entered for one nutrient range.
// Values are parsed and validated server-side so clients never need to
// pre-validate.
type RangeInput struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// OptimizeRequest is the request body for generating meal plans.
// Constraints is keyed by nutrient range key (calories, protein, carbs,
// fats, sugars, sodium); omitted keys mean no bounds.
type OptimizeRequest struct {
	HallID       int                   `json:"hallId"`
	MealPeriod   string                `json:"mealPeriod"`
	Constraints  map[string]RangeInput `json:"constraints,omitempty"`
	DietaryFlags []string              `json:"dietaryFlags,omitempty"`
	Allergens    []string              `json:"allergens,omitempty"`
}

// OptimizeResponse is the response for meal plan generation.
type OptimizeResponse struct {
	Plans []MealPlan `json:"plans"`
}

// MealPlan is one candidate meal combination with aggregated totals.
type MealPlan struct {
	Options []MealSelection `json:"options"`

	TotalCaloriesKcal  int `json:"totalCaloriesKcal"`
	TotalProteinG      int `json:"totalProteinG"`
	TotalCarbohydrateG int `json:"totalCarbohydrateG"`
	TotalFatG          int `json:"totalFatG"`
}

// MealSelection is one chosen item within a meal plan.
type MealSelection struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity"`
	Station    string   `json:"station"`
	Components []string `json:"components,omitempty"`

	CaloriesKcal       int `json:"caloriesKcal"`
	ProteinG           int `json:"proteinG"`
	TotalCarbohydrateG int `json:"totalCarbohydrateG"`
	TotalFatG          int `json:"totalFatG"`
}

// MealPlanFromDomain converts a domain meal plan.
func MealPlanFromDomain(p optimizer.MealPlan) MealPlan {
	options := make([]MealSelection, 0, len(p.Options))
	for _, opt := range p.Options {
		options = append(options, MealSelection{
			ID:                 opt.ID,
			Name:               opt.Name,
			Quantity:           opt.Quantity,
			Station:            opt.Station,
			Components:         opt.Components,
			CaloriesKcal:       opt.CaloriesKcal,
			ProteinG:           opt.ProteinG,
			TotalCarbohydrateG: opt.TotalCarbohydrateG,
			TotalFatG:          opt.TotalFatG,
		})
	}
	return MealPlan{
		Options:            options,
		TotalCaloriesKcal:  p.TotalCaloriesKcal,
		TotalProteinG:      p.TotalProteinG,
		TotalCarbohydrateG: p.TotalCarbohydrateG,
		TotalFatG:          p.TotalFatG,
	}
}

// ToDomain converts an API meal plan back into its domain form.
func (p MealPlan) ToDomain() optimizer.MealPlan {
	options := make([]optimizer.MealSelection, 0, len(p.Options))
	for _, opt := range p.Options {
		options = append(options, optimizer.MealSelection{
			ID:                 opt.ID,
			Name:               opt.Name,
			Quantity:           opt.Quantity,
			Station:            opt.Station,
			Components:         opt.Components,
			CaloriesKcal:       opt.CaloriesKcal,
			ProteinG:           opt.ProteinG,
			TotalCarbohydrateG: opt.TotalCarbohydrateG,
			TotalFatG:          opt.TotalFatG,
		})
	}
	return optimizer.MealPlan{
		Options:            options,
		TotalCaloriesKcal:  p.TotalCaloriesKcal,
		TotalProteinG:      p.TotalProteinG,
		TotalCarbohydrateG: p.TotalCarbohydrateG,
		TotalFatG:          p.TotalFatG,
	}
}

// MealPlansFromDomain converts a slice of domain meal plans, never nil.
func MealPlansFromDomain(plans []optimizer.MealPlan) []MealPlan {
	out := make([]MealPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, MealPlanFromDomain(p))
	}
	return out
}
