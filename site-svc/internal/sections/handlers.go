package sections

import (
	"encoding/json"
	"errors"
	"net/http"

	"bella-vista/domain"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Sections SectionsInterface
	Logger   *zap.Logger
}

func NewHandler(sections SectionsInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Sections: sections, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	s := r.PathPrefix("/sections").Subrouter()
	s.HandleFunc("/menu", h.getMenu).Methods("GET")
	s.HandleFunc("/gallery", h.getGallery).Methods("GET")
	s.HandleFunc("/testimonials", h.getTestimonials).Methods("GET")
	s.HandleFunc("/reservations", h.getReservationOptions).Methods("GET")
	s.HandleFunc("/reservations", h.bookTable).Methods("POST")
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	view, err := h.Sections.Menu(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getGallery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Sections.Gallery(r.Context()))
}

func (h *Handler) getTestimonials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Sections.Testimonials(r.Context()))
}

func (h *Handler) getReservationOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timeSlots": TimeSlots,
		"minGuests": MinGuests,
		"maxGuests": MaxGuests,
	})
}

func (h *Handler) bookTable(w http.ResponseWriter, r *http.Request) {
	var req ReservationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		h.writeError(w, domain.NewValidationError("invalid request body"))
		return
	}

	reservation, err := h.Sections.BookTable(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

type errorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError answers 400 for anything the visitor can fix. Every other
// failure means the booking could not be stored right now.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Details: vErr.Fields})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.Logger.Error("section request failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	}
}
