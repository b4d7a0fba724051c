package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bella-vista/activity-svc/internal/service"
	"bella-vista/domain"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Activity service.ActivityInterface
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewHandler(svc service.ActivityInterface, logger *zap.Logger) *Handler {
	return &Handler{Activity: svc, Logger: logger, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "activity-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/activity/recent", h.getRecent).Methods("GET")
	r.HandleFunc("/api/activity/daily", h.getDaily).Methods("GET")
}

func (h *Handler) getRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.writeError(w, domain.NewValidationError("invalid limit",
				domain.FieldError{Field: "limit", Message: "must be a positive integer"}))
			return
		}
		limit = n
	}

	events, err := h.Activity.Recent(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.Now().UTC().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		h.writeError(w, domain.NewValidationError("invalid date",
			domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"}))
		return
	}

	counts, err := h.Activity.Daily(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":   date,
		"counts": counts,
	})
}

type errorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Details: vErr.Fields})
	case errors.Is(err, domain.ErrStorageUnavailable):
		h.Logger.Error("activity storage unavailable", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage unavailable"})
	default:
		h.Logger.Error("activity request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
