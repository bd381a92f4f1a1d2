package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fuelstack/fuelstack/internal/api/models"
	"github.com/fuelstack/fuelstack/internal/api/response"
	"github.com/fuelstack/fuelstack/internal/hall"
)

// HallHandler handles dining hall endpoints.
type HallHandler struct {
	halls *hall.Service
}

// NewHallHandler creates a new HallHandler.
func NewHallHandler(halls *hall.Service) *HallHandler {
	return &HallHandler{halls: halls}
}

// ListHalls handles GET /v1/halls - list dining halls.
func (h *HallHandler) ListHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.halls.ListHalls(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "dining hall listing is temporarily unavailable")
		return
	}

	converted := make([]models.Hall, 0, len(halls))
	for _, dh := range halls {
		converted = append(converted, models.HallFromDomain(dh))
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, models.HallListResponse{Halls: converted})
}

// GetHall handles GET /v1/halls/{hallID} - get a single dining hall.
func (h *HallHandler) GetHall(w http.ResponseWriter, r *http.Request) {
	id, ok := hallIDParam(w, r)
	if !ok {
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

	response.JSON(w, r, http.StatusOK, models.HallFromDomain(*dh))
}

// hallIDParam parses the hallID URL parameter, writing a 400 on failure.
func hallIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "hallID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(w, r, "hallID must be an integer", []models.FieldError{
			{Field: "hallID", Message: "must be an integer"},
		})
		return 0, false
	}
	return id, true
}
