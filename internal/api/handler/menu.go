package handler

import (
	"errors"
	"net/http"

	"github.com/fuelstack/fuelstack/internal/api/models"
	"github.com/fuelstack/fuelstack/internal/api/response"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/menu"
)

// MenuHandler handles menu endpoints.
type MenuHandler struct {
	halls *hall.Service
	menus *menu.Service
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(halls *hall.Service, menus *menu.Service) *MenuHandler {
	return &MenuHandler{halls: halls, menus: menus}
}

// GetMenu handles GET /v1/halls/{hallID}/menu?meal_period= - today's menu
// for a hall and period, grouped by station.
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := hallIDParam(w, r)
	if !ok {
		return
	}

	period, err := hall.ParseMealPeriod(r.URL.Query().Get("meal_period"))
	if err != nil {
		response.BadRequest(w, r, "meal_period must be breakfast, lunch, or dinner", []models.FieldError{
			{Field: "meal_period", Message: "must be breakfast, lunch, or dinner"},
		})
		return
	}

	dh, err := h.halls.GetHall(r.Context(), id)
	if err != nil {
		if errors.Is(err, hall.ErrHallNotFound) {
			response.NotFound(w, r, "dining hall not found")
			return
		}
		response.ServiceUnavailable(w, r, "dining hall listing is temporarily unavailable")
		return
	}

	if !offersPeriod(*dh, period) {
		response.BadRequest(w, r, "meal period not served today at this hall", []models.FieldError{
			{Field: "meal_period", Message: "not served today at this hall"},
		})
		return
	}

	groups, err := h.menus.Grouped(r.Context(), id, period)
	if err != nil {
		response.ServiceUnavailable(w, r, "menu is temporarily unavailable")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, models.MenuFromGroups(id, string(period), groups))
}

// offersPeriod reports whether the hall serves the period today, with
// missing availability treated as serving every period.
func offersPeriod(dh hall.Hall, period hall.MealPeriod) bool {
	for _, p := range hall.OfferedPeriods(dh) {
		if p == period {
			return true
		}
	}
	return false
}
