package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bella-vista/client"
	"bella-vista/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[V any](v V) *V { return &v }

func TestRemote_GetAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/gallery", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"g1","title":"Terrace","url":"/img/t.jpg","alt":"Terrace at dusk"}]`))
	}))
	defer server.Close()

	set := client.NewRemoteSet(server.URL+"/", server.Client())
	items, err := set.Gallery.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.GalleryItem{{ID: "g1", Title: "Terrace", URL: "/img/t.jpg", Alt: "Terrace at dusk"}}, items)
}

func TestRemote_GetAllNullIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	items, err := client.NewRemoteSet(server.URL, server.Client()).Menu.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRemote_CreateAndUpdate(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = nil
		json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
		}
		w.Write([]byte(`{"id":"r1","name":"Ana","email":"ana@example.com","date":"2026-10-24","time":"19:30","guests":2,"status":"confirmed"}`))
	}))
	defer server.Close()

	reservations := client.NewRemoteSet(server.URL, server.Client()).Reservations

	created, err := reservations.Create(context.Background(), domain.ReservationInput{
		Name: "Ana", Email: "ana@example.com", Date: "2026-10-24", Time: "19:30", Guests: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/reservations", gotPath)
	assert.Equal(t, "Ana", gotBody["name"])
	assert.Equal(t, "r1", created.ID)

	confirmed := domain.StatusConfirmed
	updated, err := reservations.Update(context.Background(), "r1", domain.ReservationPatch{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/reservations/r1", gotPath)
	assert.Equal(t, "confirmed", gotBody["status"])
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
}

func TestRemote_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "validation", status: http.StatusBadRequest, body: `{"error":"validation failed","details":[{"field":"rating","message":"must be at most 5"}]}`, wantErr: domain.ErrValidation},
		{name: "not_found", status: http.StatusNotFound, body: `{"error":"not found"}`, wantErr: domain.ErrNotFound},
		{name: "unavailable", status: http.StatusServiceUnavailable, body: `{"error":"storage unavailable"}`, wantErr: domain.ErrStorageUnavailable},
		{name: "internal", status: http.StatusInternalServerError, wantErr: domain.ErrStorageUnavailable},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				w.Write([]byte(testCase.body))
			}))
			defer server.Close()

			testimonials := client.NewRemoteSet(server.URL, server.Client()).Testimonials
			_, err := testimonials.Update(context.Background(), "t1", domain.TestimonialPatch{Rating: ptr(9)})

			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestRemote_ValidationDetailsSurvive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"validation failed","details":[{"field":"url","message":"is required"}]}`))
	}))
	defer server.Close()

	_, err := client.NewRemoteSet(server.URL, server.Client()).Gallery.Create(context.Background(), domain.GalleryItemInput{Title: "x"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []domain.FieldError{{Field: "url", Message: "is required"}}, verr.Fields)
}

func TestRemote_TransportErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	err := client.NewRemoteSet(server.URL, http.DefaultClient).Menu.Delete(context.Background(), "m1")

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
