package dining

import "fmt"

// StatusError is a non-2xx response from the dining API. The body text
// is preserved verbatim for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dining api returned %d: %s", e.StatusCode, e.Body)
}

// Wire shapes for the dining API.

type hallData struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	MealsToday []string `json:"meals_today"`
}

type menuItemData struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Station            string   `json:"station"`
	PortionSize        string   `json:"portion_size"`
	ServingSizeG       float64  `json:"serving_size_g"`
	CaloriesKcal       float64  `json:"calories_kcal"`
	ProteinG           float64  `json:"protein_g"`
	TotalFatG          float64  `json:"total_fat_g"`
	SaturatedFatG      float64  `json:"saturated_fat_g"`
	TransFatG          float64  `json:"trans_fat_g"`
	TotalCarbohydrateG float64  `json:"total_carbohydrate_g"`
	SugarsG            float64  `json:"sugars_g"`
	SodiumMg           float64  `json:"sodium_mg"`
	DietaryFiberG      float64  `json:"dietary_fiber_g"`
	CholesterolMg      float64  `json:"cholesterol_mg"`
	Traits             []string `json:"traits"`
	Allergens          []string `json:"allergens"`
}

type mealOptionData struct {
	Name               string   `json:"name"`
	ID                 int      `json:"id"`
	Components         []string `json:"components"`
	Quantity           int      `json:"quantity"`
	Station            string   `json:"station"`
	CaloriesKcal       int      `json:"calories_kcal"`
	ProteinG           int      `json:"protein_g"`
	TotalCarbohydrateG int      `json:"total_carbohydrate_g"`
	TotalFatG          int      `json:"total_fat_g"`
}

type mealPlanData struct {
	Options            []mealOptionData `json:"options"`
	TotalCaloriesKcal  int              `json:"total_calories_kcal"`
	TotalProteinG      int              `json:"total_protein_g"`
	TotalCarbohydrateG int              `json:"total_carbohydrate_g"`
	TotalFatG          int              `json:"total_fat_g"`
}
