package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bella-vista/domain"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto status codes. Storage details are
// logged, never returned.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Details: vErr.Fields})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		logger.Error("storage unavailable", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage unavailable"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(data []byte, dst any) error {
	if len(data) == 0 {
		return domain.NewValidationError("request body is required")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return domain.NewValidationError("invalid request body", domain.FieldError{Field: "body", Message: err.Error()})
	}
	return nil
}

// methodNotAllowed answers requests whose path matched but whose method did
// not match any route registered for it.
func methodNotAllowed(methods ...string) http.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method " + r.Method + " not allowed"})
	}
}
