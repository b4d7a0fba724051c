package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bella-vista/domain"
	"bella-vista/site-svc/internal/gateway"
	"bella-vista/site-svc/internal/sections"

	"github.com/stretchr/testify/assert"
)

type emptyReader[T any] struct{}

func (emptyReader[T]) GetAll(context.Context) ([]T, error) { return nil, nil }

// TestNewRouter_ServesSectionsAndProxiesAPI checks that both route groups
// are mounted on one router.
func TestNewRouter_ServesSectionsAndProxiesAPI(t *testing.T) {
	backendPath := ""
	content := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer content.Close()

	gw := gateway.NewGateway(gateway.Config{ContentSvcURL: content.URL}, content.Client(), nil)
	secs := sections.NewSections(sections.Readers{
		Menu:         emptyReader[domain.MenuItem]{},
		Gallery:      emptyReader[domain.GalleryItem]{},
		Testimonials: emptyReader[domain.Testimonial]{},
	}, nil, nil)
	router := newRouter(gw, sections.NewHandler(secs, nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/api/menu", backendPath)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sections/gallery", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Wine cellar")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
