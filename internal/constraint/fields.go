// Package constraint provides nutrient range constraints and the
// meal-generation form state backing them.
package constraint

// RangeKey identifies a nutrient range constraint.
type RangeKey string

// Nutrient range keys in declared form order. The order is the
// tie-break used when several fields are invalid on submit.
const (
	Calories RangeKey = "calories"
	Protein  RangeKey = "protein"
	Carbs    RangeKey = "carbs"
	Fats     RangeKey = "fats"
	Sugars   RangeKey = "sugars"
	Sodium   RangeKey = "sodium"
)

// RangeKeys returns every range key in declared form order.
func RangeKeys() []RangeKey {
	return []RangeKey{Calories, Protein, Carbs, Fats, Sugars, Sodium}
}

// Field describes one range constraint: its label, the exact wire field
// names the optimizer expects, and whether a bound must be supplied.
// Required is data, not per-key code; adding a required nutrient means
// adding a row here.
type Field struct {
	Key      RangeKey
	Label    string
	WireMin  string
	WireMax  string
	Required bool
}

// Fields returns the canonical field table in declared form order.
func Fields() []Field {
	return []Field{
		{Key: Calories, Label: "Calories (kcal)", WireMin: "calories_min", WireMax: "calories_max", Required: true},
		{Key: Protein, Label: "Protein (g)", WireMin: "protein_min", WireMax: "protein_max"},
		{Key: Carbs, Label: "Carbohydrates (g)", WireMin: "carb_min", WireMax: "carb_max"},
		{Key: Fats, Label: "Fats (g)", WireMin: "fat_min", WireMax: "fat_max"},
		{Key: Sugars, Label: "Sugars (g)", WireMin: "sugars_min", WireMax: "sugars_max"},
		{Key: Sodium, Label: "Sodium (mg)", WireMin: "sodium_min", WireMax: "sodium_max"},
	}
}

// FieldFor looks up the descriptor for a range key.
func FieldFor(key RangeKey) (Field, bool) {
	for _, f := range Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// DietaryFlag is a boolean dietary preference forwarded to the optimizer.
type DietaryFlag string

// Supported dietary flags.
const (
	Vegan      DietaryFlag = "vegan"
	Halal      DietaryFlag = "halal"
	GlutenFree DietaryFlag = "gluten-free"
)

// DietaryFlags returns the supported flags in display order.
func DietaryFlags() []DietaryFlag {
	return []DietaryFlag{Vegan, Halal, GlutenFree}
}
