package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fuelstack/fuelstack/internal/api/models"
	"github.com/fuelstack/fuelstack/internal/api/response"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/plans"
)

// PlanHandler handles saved meal plan endpoints.
type PlanHandler struct {
	plans *plans.Service
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(svc *plans.Service) *PlanHandler {
	return &PlanHandler{plans: svc}
}

// ListPlans handles GET /v1/plans - list saved plans, newest first.
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	saved, err := h.plans.List(r.Context(), plans.ListOptions{})
	if err != nil {
		response.InternalError(w, r, "failed to list saved plans")
		return
	}

	converted := make([]models.SavedPlan, 0, len(saved))
	for _, p := range saved {
		converted = append(converted, models.SavedPlanFromDomain(p))
	}
	response.JSON(w, r, http.StatusOK, models.SavedPlanListResponse{Plans: converted})
}

// SavePlan handles POST /v1/plans - save a generated plan.
func (h *PlanHandler) SavePlan(w http.ResponseWriter, r *http.Request) {
	var input models.SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	period, err := hall.ParseMealPeriod(input.MealPeriod)
	if err != nil {
		response.BadRequest(w, r, "mealPeriod must be breakfast, lunch, or dinner", []models.FieldError{
			{Field: "mealPeriod", Message: "must be breakfast, lunch, or dinner"},
		})
		return
	}
	if len(input.Plan.Options) == 0 {
		response.BadRequest(w, r, "plan must contain at least one option", []models.FieldError{
			{Field: "plan.options", Message: "must not be empty"},
		})
		return
	}

	saved, err := h.plans.Save(r.Context(), input.HallID, input.HallName, period, input.Plan.ToDomain())
	if err != nil {
		response.InternalError(w, r, "failed to save plan")
		return
	}

	location := fmt.Sprintf("/v1/plans/%s", saved.ID)
	response.Created(w, r, location, models.SavedPlanFromDomain(saved))
}

// GetPlan handles GET /v1/plans/{planID} - get a saved plan.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	saved, err := h.plans.Get(r.Context(), planID)
	if err != nil {
		if errors.Is(err, plans.ErrPlanNotFound) {
			response.NotFound(w, r, "saved plan not found")
			return
		}
		response.InternalError(w, r, "failed to load saved plan")
		return
	}
	response.JSON(w, r, http.StatusOK, models.SavedPlanFromDomain(saved))
}

// DeletePlan handles DELETE /v1/plans/{planID} - delete a saved plan.
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	if err := h.plans.Delete(r.Context(), planID); err != nil {
		if errors.Is(err, plans.ErrPlanNotFound) {
			response.NotFound(w, r, "saved plan not found")
			return
		}
		response.InternalError(w, r, "failed to delete saved plan")
		return
	}
	response.NoContent(w, r)
}
