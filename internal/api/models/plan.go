package models

import "github.com/fuelstack/fuelstack/internal/plans"

// SavePlanRequest is the request body for saving a generated plan.
type SavePlanRequest struct {
	HallID     int      `json:"hallId"`
	HallName   string   `json:"hallName"`
	MealPeriod string   `json:"mealPeriod"`
	Plan       MealPlan `json:"plan"`
}

// SavedPlan is a stored meal plan in API responses.
type SavedPlan struct {
	ID         string    `json:"id"`
	HallID     int       `json:"hallId"`
	HallName   string    `json:"hallName"`
	MealPeriod string    `json:"mealPeriod"`
	Plan       MealPlan  `json:"plan"`
	CreatedAt  Timestamp `json:"createdAt"`
}

// SavedPlanListResponse is the response for listing saved plans.
type SavedPlanListResponse struct {
	Plans []SavedPlan `json:"plans"`
}

// SavedPlanFromDomain converts a domain saved plan.
func SavedPlanFromDomain(p *plans.SavedPlan) SavedPlan {
	return SavedPlan{
		ID:         p.ID,
		HallID:     p.HallID,
		HallName:   p.HallName,
		MealPeriod: string(p.Period),
		Plan:       MealPlanFromDomain(p.Plan),
		CreatedAt:  Timestamp(p.CreatedAt),
	}
}
