package foods

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fdg312/diet-hub/internal/catalog"
)

// Handler содержит HTTP обработчики каталога
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList обрабатывает GET /v1/foods
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, h.service.List())
}

// HandleGet обрабатывает GET /v1/foods/{name}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	food, err := h.service.Get(name)
	if errors.Is(err, catalog.ErrFoodNotFound) {
		h.sendError(w, http.StatusNotFound, "food_not_found", err.Error())
		return
	}
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to get food")
		return
	}

	h.sendJSON(w, http.StatusOK, food)
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
