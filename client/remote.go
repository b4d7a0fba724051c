package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bella-vista/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Remote talks to the content-svc CRUD API for one resource kind.
type Remote[T any, In any, P any] struct {
	baseURL  string
	resource string
	client   HTTPClient
}

func NewRemote[T any, In any, P any](baseURL, resource string, client HTTPClient) *Remote[T, In, P] {
	return &Remote[T, In, P]{
		baseURL:  strings.TrimRight(baseURL, "/"),
		resource: resource,
		client:   client,
	}
}

func NewRemoteSet(baseURL string, client HTTPClient) Set {
	return Set{
		Menu:         NewRemote[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch](baseURL, domain.ResourceMenu, client),
		Reservations: NewRemote[domain.Reservation, domain.ReservationInput, domain.ReservationPatch](baseURL, domain.ResourceReservations, client),
		Gallery:      NewRemote[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch](baseURL, domain.ResourceGallery, client),
		Testimonials: NewRemote[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch](baseURL, domain.ResourceTestimonials, client),
	}
}

func (r *Remote[T, In, P]) collectionURL() string {
	return r.baseURL + "/api/" + r.resource
}

func (r *Remote[T, In, P]) itemURL(id string) string {
	return r.collectionURL() + "/" + url.PathEscape(id)
}

func (r *Remote[T, In, P]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.do(ctx, http.MethodGet, r.collectionURL(), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Remote[T, In, P]) Create(ctx context.Context, input In) (*T, error) {
	var created T
	if err := r.do(ctx, http.MethodPost, r.collectionURL(), input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Remote[T, In, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	var updated T
	if err := r.do(ctx, http.MethodPatch, r.itemURL(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Remote[T, In, P]) Delete(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, r.itemURL(id), nil, nil)
}

func (r *Remote[T, In, P]) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", r.resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", r.resource, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrStorageUnavailable, method, r.resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrStorageUnavailable, r.resource, err)
	}
	return nil
}

type errorBody struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details"`
}

func responseError(resp *http.Response) error {
	var body errorBody
	json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	if body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return domain.NewValidationError(body.Error, body.Details...)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, body.Error)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", domain.ErrStorageUnavailable, resp.StatusCode, body.Error)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body.Error)
	}
}
