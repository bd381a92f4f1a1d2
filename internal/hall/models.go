// Package hall provides dining hall listings and meal period selection.
package hall

import (
	"errors"
	"fmt"
)

// Repository and selection errors.
var (
	ErrHallNotFound = errors.New("dining hall not found")
)

// MealPeriod is one of the three daily meal services.
type MealPeriod string

// Meal periods in daily order.
const (
	Breakfast MealPeriod = "breakfast"
	Lunch     MealPeriod = "lunch"
	Dinner    MealPeriod = "dinner"
)

// AllMealPeriods lists every meal period in daily order.
func AllMealPeriods() []MealPeriod {
	return []MealPeriod{Breakfast, Lunch, Dinner}
}

// ParseMealPeriod converts a raw string to a MealPeriod.
func ParseMealPeriod(s string) (MealPeriod, error) {
	switch MealPeriod(s) {
	case Breakfast, Lunch, Dinner:
		return MealPeriod(s), nil
	default:
		return "", fmt.Errorf("unknown meal period %q", s)
	}
}

// Valid reports whether p is a known meal period.
func (p MealPeriod) Valid() bool {
	return p == Breakfast || p == Lunch || p == Dinner
}

// Hall represents a dining hall offering menus.
// An empty MealsToday does not mean the hall is closed; the selection
// fallback in Navigator treats it as offering every period.
type Hall struct {
	ID         int
	Name       string
	MealsToday []MealPeriod
}
