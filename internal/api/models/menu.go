package models

import "github.com/fuelstack/fuelstack/internal/menu"

// MenuItem is one menu item in API responses.
type MenuItem struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	PortionSize      string    `json:"portionSize,omitempty"`
	ServingSizeGrams float64   `json:"servingSizeGrams"`
	Nutrients        Nutrients `json:"nutrients"`
	Traits           []string  `json:"traits,omitempty"`
	Allergens        []string  `json:"allergens,omitempty"`
}

// Nutrients holds the per-serving nutrition facts of a menu item.
type Nutrients struct {
	CaloriesKcal       float64 `json:"caloriesKcal"`
	ProteinG           float64 `json:"proteinG"`
	TotalFatG          float64 `json:"totalFatG"`
	SaturatedFatG      float64 `json:"saturatedFatG"`
	TransFatG          float64 `json:"transFatG"`
	TotalCarbohydrateG float64 `json:"totalCarbohydrateG"`
	SugarsG            float64 `json:"sugarsG"`
	SodiumMg           float64 `json:"sodiumMg"`
	DietaryFiberG      float64 `json:"dietaryFiberG"`
	CholesterolMg      float64 `json:"cholesterolMg"`
}

// Station is a named group of menu items.
type Station struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuResponse is the response for a dining hall menu, grouped by station
// in first-appearance order.
type MenuResponse struct {
	HallID     int       `json:"hallId"`
	MealPeriod string    `json:"mealPeriod"`
	Stations   []Station `json:"stations"`
}

// MenuItemFromDomain converts a domain menu item.
func MenuItemFromDomain(it menu.Item) MenuItem {
	return MenuItem{
		ID:               it.ID,
		Name:             it.Name,
		PortionSize:      it.PortionSize,
		ServingSizeGrams: it.ServingSizeGrams,
		Nutrients: Nutrients{
			CaloriesKcal:       it.Nutrients.CaloriesKcal,
			ProteinG:           it.Nutrients.ProteinG,
			TotalFatG:          it.Nutrients.TotalFatG,
			SaturatedFatG:      it.Nutrients.SaturatedFatG,
			TransFatG:          it.Nutrients.TransFatG,
			TotalCarbohydrateG: it.Nutrients.TotalCarbohydrateG,
			SugarsG:            it.Nutrients.SugarsG,
			SodiumMg:           it.Nutrients.SodiumMg,
			DietaryFiberG:      it.Nutrients.DietaryFiberG,
			CholesterolMg:      it.Nutrients.CholesterolMg,
		},
		Traits:    it.Traits,
		Allergens: it.Allergens,
	}
}

// MenuFromGroups converts station-grouped menu items.
func MenuFromGroups(hallID int, period string, groups menu.StationGroups) MenuResponse {
	stations := make([]Station, 0, groups.Len())
	for _, name := range groups.Stations() {
		items := groups.Items(name)
		converted := make([]MenuItem, 0, len(items))
		for _, it := range items {
			converted = append(converted, MenuItemFromDomain(it))
		}
		stations = append(stations, Station{Name: name, Items: converted})
	}
	return MenuResponse{
		HallID:     hallID,
		MealPeriod: period,
		Stations:   stations,
	}
}
