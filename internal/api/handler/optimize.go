package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fuelstack/fuelstack/internal/api/models"
	"github.com/fuelstack/fuelstack/internal/api/response"
	"github.com/fuelstack/fuelstack/internal/constraint"
	"github.com/fuelstack/fuelstack/internal/dining"
	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/optimizer"
)

// OptimizeHandler handles meal optimization endpoints.
type OptimizeHandler struct {
	halls  *hall.Service
	client optimizer.Client
}

// NewOptimizeHandler creates a new OptimizeHandler.
func NewOptimizeHandler(halls *hall.Service, client optimizer.Client) *OptimizeHandler {
	return &OptimizeHandler{halls: halls, client: client}
}

// Optimize handles POST /v1/optimize - generate meal plans for a hall,
// period, and constraint set. Constraint input is validated server-side;
// a validation failure returns 422 with per-field errors, the first one
// in form order marked for focus.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var input models.OptimizeRequest
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

	dh, err := h.halls.GetHall(r.Context(), input.HallID)
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
			{Field: "mealPeriod", Message: "not served today at this hall"},
		})
		return
	}

	form := buildForm(input)
	if ok, firstInvalid := form.Submit(); !ok {
		response.Unprocessable(w, r, "constraint validation failed", fieldErrors(form, firstInvalid))
		return
	}

	plans, err := h.client.Optimize(r.Context(), optimizer.BuildRequest(input.HallID, period, form))
	if err != nil {
		var statusErr *dining.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnprocessableEntity {
			response.Unprocessable(w, r, "the optimizer rejected the request", nil)
			return
		}
		response.ServiceUnavailable(w, r, "meal optimization is temporarily unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.OptimizeResponse{
		Plans: models.MealPlansFromDomain(plans),
	})
}

// buildForm populates a constraint form from raw request input. Unknown
// constraint keys and dietary flags are ignored rather than rejected.
func buildForm(input models.OptimizeRequest) *constraint.Form {
	form := constraint.NewForm()

	for _, key := range constraint.RangeKeys() {
		in, ok := input.Constraints[string(key)]
		if !ok {
			continue
		}
		form.SetMin(key, in.Min)
		form.SetMax(key, in.Max)
	}

	known := make(map[constraint.DietaryFlag]bool)
	for _, flag := range constraint.DietaryFlags() {
		known[flag] = true
	}
	for _, raw := range input.DietaryFlags {
		if flag := constraint.DietaryFlag(raw); known[flag] {
			form.ToggleFlag(flag, true)
		}
	}

	for _, allergen := range input.Allergens {
		form.SelectAllergen(allergen, true)
	}

	return form
}

// fieldErrors flattens the form's error map into wire field errors in
// form order, marking the field that should receive focus.
func fieldErrors(form *constraint.Form, firstInvalid constraint.RangeKey) []models.FieldError {
	errs := form.Errors()
	out := make([]models.FieldError, 0, len(errs))
	for _, field := range form.Fields() {
		msg := errs[field.Key]
		if msg == "" {
			continue
		}
		fe := models.FieldError{Field: string(field.Key), Message: msg}
		if field.Key == firstInvalid {
			fe.Code = "focus"
		}
		out = append(out, fe)
	}
	return out
}
