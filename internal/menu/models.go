// Package menu provides menu items, station grouping, and menu fetching
// for a dining hall and meal period.
package menu

// Nutrients holds the per-serving nutrition facts of a menu item.
// Field names carry the unit so values are never re-interpreted.
type Nutrients struct {
	CaloriesKcal       float64
	ProteinG           float64
	TotalFatG          float64
	SaturatedFatG      float64
	TransFatG          float64
	TotalCarbohydrateG float64
	SugarsG            float64
	SodiumMg           float64
	DietaryFiberG      float64
	CholesterolMg      float64
}

// Item is one menu item as served today. Items are immutable snapshots;
// IDs are unique within a single fetch but not guaranteed stable across
// days.
type Item struct {
	ID               int
	Name             string
	Station          string
	PortionSize      string
	ServingSizeGrams float64
	Nutrients        Nutrients
	Traits           []string
	Allergens        []string
}
