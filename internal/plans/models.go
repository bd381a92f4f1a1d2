// Package plans provides saved meal plan history.
package plans

import (
	"errors"
	"time"

	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/optimizer"
)

// Repository errors.
var (
	ErrPlanNotFound = errors.New("saved plan not found")
)

// SavedPlan is one generated meal plan the user chose to keep, together
// with the selection context it was generated for.
type SavedPlan struct {
	ID        string
	HallID    int
	HallName  string
	Period    hall.MealPeriod
	Plan      optimizer.MealPlan
	CreatedAt time.Time
}
