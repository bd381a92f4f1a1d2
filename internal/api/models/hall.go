package models

import "github.com/fuelstack/fuelstack/internal/hall"

// Hall is a dining hall in API responses.
type Hall struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	MealPeriods []string `json:"mealPeriods"`
}

// HallListResponse is the response for listing dining halls.
type HallListResponse struct {
	Halls []Hall `json:"halls"`
}

// HallFromDomain converts a domain hall, completing missing availability
// with the full meal-period set.
func HallFromDomain(h hall.Hall) Hall {
	periods := hall.OfferedPeriods(h)
	names := make([]string, 0, len(periods))
	for _, p := range periods {
		names = append(names, string(p))
	}
	return Hall{
		ID:          h.ID,
		Name:        h.Name,
		MealPeriods: names,
	}
}
