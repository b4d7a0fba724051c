package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bella-vista/content-svc/internal/service"
	"bella-vista/domain"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Handler struct {
	Menu         service.MenuServiceInterface
	Reservations service.ReservationServiceInterface
	Gallery      service.GalleryServiceInterface
	Testimonials service.TestimonialServiceInterface

	UploadDir string
	Logger    *zap.Logger
}

func NewHandler(menu service.MenuServiceInterface, reservations service.ReservationServiceInterface,
	gallery service.GalleryServiceInterface, testimonials service.TestimonialServiceInterface) *Handler {
	return &Handler{
		Menu:         menu,
		Reservations: reservations,
		Gallery:      gallery,
		Testimonials: testimonials,
		UploadDir:    "./uploads",
		Logger:       zap.NewNop(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods(http.MethodGet)

	// Sub-resource routes go first so the generic item fallback never
	// shadows them.
	r.HandleFunc("/api/gallery/{id}/image", h.uploadGalleryImage).Methods(http.MethodPost)
	r.HandleFunc("/api/gallery/{id}/image", methodNotAllowed(http.MethodPost))

	registerResource(r, domain.ResourceMenu, h.Menu, h.Logger)
	if h.Reservations != nil {
		r.HandleFunc("/api/reservations/{id}/qrcode", h.getReservationQRCode).Methods(http.MethodGet)
		r.HandleFunc("/api/reservations/{id}/qrcode", methodNotAllowed(http.MethodGet))
		registerResource[domain.Reservation, domain.ReservationInput, domain.ReservationPatch](
			r, domain.ResourceReservations, h.Reservations, h.Logger)
	}
	registerResource(r, domain.ResourceGallery, h.Gallery, h.Logger)
	registerResource(r, domain.ResourceTestimonials, h.Testimonials, h.Logger)

	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir))))
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "content-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getReservationQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Reservations.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

// uploadGalleryImage stores the file under UploadDir and points the gallery
// item's url at it.
func (h *Handler) uploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := h.Gallery.Get(r.Context(), id); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<10)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, h.Logger, domain.NewValidationError("file too large or malformed form",
			domain.FieldError{Field: "image", Message: err.Error()}))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, h.Logger, domain.NewValidationError("image file is required",
			domain.FieldError{Field: "image", Message: "is required"}))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		writeError(w, h.Logger, domain.NewValidationError("unsupported image type",
			domain.FieldError{Field: "image", Message: fmt.Sprintf("type %q is not allowed", contentType)}))
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		writeError(w, h.Logger, fmt.Errorf("create upload directory: %w", err))
		return
	}

	filename := "gallery_" + sanitize(id) + "_" + sanitize(filepath.Base(header.Filename))
	dst, err := os.Create(filepath.Join(h.UploadDir, filename))
	if err != nil {
		writeError(w, h.Logger, fmt.Errorf("create upload file: %w", err))
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, h.Logger, fmt.Errorf("write upload file: %w", err))
		return
	}

	imageURL := "/uploads/" + filename
	item, err := h.Gallery.Update(r.Context(), id, domain.GalleryItemPatch{URL: &imageURL})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
