package httpapi

import (
	"errors"
	"io"
	"net/http"

	"bella-vista/content-svc/internal/service"
	"bella-vista/domain"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// resourceHandler serves the five CRUD routes of one collection.
type resourceHandler[T any, In any, P any] struct {
	name   string
	svc    service.ResourceService[T, In, P]
	logger *zap.Logger
}

func registerResource[T any, In any, P any](r *mux.Router, name string, svc service.ResourceService[T, In, P], logger *zap.Logger) {
	if svc == nil {
		return
	}
	h := &resourceHandler[T, In, P]{name: name, svc: svc, logger: logger}

	collection := "/api/" + name
	item := collection + "/{id}"

	r.HandleFunc(collection, h.list).Methods(http.MethodGet)
	r.HandleFunc(collection, h.create).Methods(http.MethodPost)
	r.HandleFunc(collection, h.updateFromBody).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc(collection, h.deleteFromBody).Methods(http.MethodDelete)
	r.HandleFunc(collection, methodNotAllowed(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete))

	r.HandleFunc(item, h.get).Methods(http.MethodGet)
	r.HandleFunc(item, h.update).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc(item, h.delete).Methods(http.MethodDelete)
	r.HandleFunc(item, methodNotAllowed(http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete))
}

func (h *resourceHandler[T, In, P]) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *resourceHandler[T, In, P]) get(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *resourceHandler[T, In, P]) create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var input In
	if err := decodeJSON(body, &input); err != nil {
		writeError(w, h.logger, err)
		return
	}
	record, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *resourceHandler[T, In, P]) update(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var patch P
	if err := decodeJSON(body, &patch); err != nil {
		writeError(w, h.logger, err)
		return
	}
	record, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *resourceHandler[T, In, P]) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bodyID is the identifier older clients send inside the request body on
// the collection route.
type bodyID struct {
	ID         string `json:"id"`
	MongoStyle string `json:"_id"`
}

func (b bodyID) value() string {
	if b.ID != "" {
		return b.ID
	}
	return b.MongoStyle
}

// updateFromBody is the collection-route update. An id that matches nothing
// is a no-op answered with 204.
func (h *resourceHandler[T, In, P]) updateFromBody(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var ref bodyID
	if err := decodeJSON(body, &ref); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if ref.value() == "" {
		writeError(w, h.logger, missingID())
		return
	}
	var patch P
	if err := decodeJSON(body, &patch); err != nil {
		writeError(w, h.logger, err)
		return
	}

	record, err := h.svc.Update(r.Context(), ref.value(), patch)
	if errors.Is(err, domain.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *resourceHandler[T, In, P]) deleteFromBody(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var ref bodyID
	if err := decodeJSON(body, &ref); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if ref.value() == "" {
		writeError(w, h.logger, missingID())
		return
	}
	if err := h.svc.Delete(r.Context(), ref.value()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewValidationError("unreadable request body", domain.FieldError{Field: "body", Message: err.Error()})
	}
	return body, nil
}

func missingID() error {
	return domain.NewValidationError("id is required", domain.FieldError{Field: "id", Message: "is required"})
}
