package diets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fdg312/diet-hub/internal/diet"
	"github.com/fdg312/diet-hub/internal/report"
)

const maxBodyBytes = 1 << 20

// Handler содержит HTTP обработчики подбора рациона
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleDefaults обрабатывает GET /v1/diet/defaults
func (h *Handler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, h.service.Defaults())
}

// HandleSolve обрабатывает POST /v1/diet/solve.
// Infeasible и unbounded — обычный результат с кодом 200.
func (h *Handler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	res, ok := h.solve(w, r)
	if !ok {
		return
	}
	h.sendJSON(w, http.StatusOK, toResponse(res))
}

// HandleReport обрабатывает POST /v1/diet/report?format=text|csv|pdf|json
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	res, ok := h.solve(w, r)
	if !ok {
		return
	}

	data, err := report.Bytes(format, res.Solution, res.Requirement)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "report_failed", "Failed to render report")
		return
	}

	filename := fmt.Sprintf("diet-%s.%s", res.SolveID, report.Extension(format))
	w.Header().Set("Content-Type", report.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Solve-Id", res.SolveID.String())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) solve(w http.ResponseWriter, r *http.Request) (*Result, bool) {
	req, err := decodeRequest(w, r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_payload", err.Error())
		return nil, false
	}

	res, err := h.service.Solve(r.Context(), req)
	if err != nil {
		status, code := errorCode(err)
		h.sendError(w, status, code, err.Error())
		return nil, false
	}
	return res, true
}

// decodeRequest допускает пустое тело: это запрос со значениями по умолчанию
func decodeRequest(w http.ResponseWriter, r *http.Request) (SolveRequest, error) {
	var req SolveRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return SolveRequest{}, nil
		}
		return SolveRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return SolveRequest{}, errors.New("invalid JSON: trailing data")
	}
	return req, nil
}

func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, diet.ErrInvalidBound):
		return http.StatusBadRequest, "invalid_bound"
	case errors.Is(err, diet.ErrUnknownFood):
		return http.StatusBadRequest, "unknown_food"
	case errors.Is(err, diet.ErrUnknownNutrient):
		return http.StatusBadRequest, "unknown_nutrient"
	case errors.Is(err, diet.ErrInvalidRequirement):
		return http.StatusBadRequest, "invalid_requirement"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
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
