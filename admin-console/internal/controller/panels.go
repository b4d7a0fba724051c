package controller

import (
	"context"
	"fmt"
	"sync"

	"bella-vista/client"
	"bella-vista/domain"
)

// Form is what the add/edit dialog produces: a create payload when adding,
// a patch when editing.
type Form[In any, P any] interface {
	Input() (In, error)
	Patch() (P, error)
}

// Panel manages one resource list. Writes go to the backend first; the
// in-memory list only changes when the backend accepted the write.
type Panel[T domain.Identifiable, In any, P any] struct {
	name     PanelName
	store    *Store
	resource client.Resource[T, In, P]
	list     func() []T
	mutate   func(func([]T) []T)

	mu      sync.Mutex
	editing string
}

type (
	MenuPanel         = Panel[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch]
	GalleryPanel      = Panel[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch]
	TestimonialsPanel = Panel[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch]
)

func newPanel[T domain.Identifiable, In any, P any](name PanelName, store *Store, resource client.Resource[T, In, P],
	list func() []T, mutate func(func([]T) []T)) *Panel[T, In, P] {
	return &Panel[T, In, P]{name: name, store: store, resource: resource, list: list, mutate: mutate}
}

func (p *Panel[T, In, P]) Name() PanelName {
	return p.name
}

func (p *Panel[T, In, P]) Items() []T {
	return p.list()
}

func (p *Panel[T, In, P]) Err() error {
	return p.store.Err(p.name)
}

// StartEdit switches the form to editing id and returns the record to
// prefill it with.
func (p *Panel[T, In, P]) StartEdit(id string) (T, bool) {
	for _, item := range p.list() {
		if item.GetID() == id {
			p.mu.Lock()
			p.editing = id
			p.mu.Unlock()
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (p *Panel[T, In, P]) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editing = ""
}

// Editing is the id being edited, empty when the form adds a new record.
func (p *Panel[T, In, P]) Editing() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing
}

// Submit creates or updates depending on the editing state. On success the
// edit state is cleared; on failure it is kept so the form can be retried.
func (p *Panel[T, In, P]) Submit(ctx context.Context, form Form[In, P]) (*T, error) {
	editing := p.Editing()
	if editing == "" {
		input, err := form.Input()
		if err != nil {
			return nil, p.fail(err)
		}
		created, err := p.resource.Create(ctx, input)
		if err != nil {
			return nil, p.fail(err)
		}
		p.mutate(func(items []T) []T { return append(items, *created) })
		p.store.setErr(p.name, nil)
		return created, nil
	}

	patch, err := form.Patch()
	if err != nil {
		return nil, p.fail(err)
	}
	updated, err := p.update(ctx, editing, patch)
	if err != nil {
		return nil, err
	}
	p.CancelEdit()
	return updated, nil
}

func (p *Panel[T, In, P]) update(ctx context.Context, id string, patch P) (*T, error) {
	updated, err := p.resource.Update(ctx, id, patch)
	if err != nil {
		return nil, p.fail(err)
	}
	p.mutate(func(items []T) []T {
		for i := range items {
			if items[i].GetID() == id {
				items[i] = *updated
			}
		}
		return items
	})
	p.store.setErr(p.name, nil)
	return updated, nil
}

func (p *Panel[T, In, P]) Delete(ctx context.Context, id string) error {
	if err := p.resource.Delete(ctx, id); err != nil {
		return p.fail(err)
	}
	p.mutate(func(items []T) []T {
		kept := items[:0]
		for _, item := range items {
			if item.GetID() != id {
				kept = append(kept, item)
			}
		}
		return kept
	})
	if p.Editing() == id {
		p.CancelEdit()
	}
	p.store.setErr(p.name, nil)
	return nil
}

func (p *Panel[T, In, P]) fail(err error) error {
	err = fmt.Errorf("%s: %w", p.name, err)
	p.store.setErr(p.name, err)
	return err
}

// StatusFilterAll matches every reservation in Filter.
const StatusFilterAll = "all"

type ReservationsPanel struct {
	*Panel[domain.Reservation, domain.ReservationInput, domain.ReservationPatch]
}

func (p *ReservationsPanel) Confirm(ctx context.Context, id string) (*domain.Reservation, error) {
	return p.setStatus(ctx, id, domain.StatusConfirmed)
}

func (p *ReservationsPanel) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	return p.setStatus(ctx, id, domain.StatusCancelled)
}

func (p *ReservationsPanel) setStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	return p.update(ctx, id, domain.ReservationPatch{Status: &status})
}

// Filter keeps reservations with the given status; "all" or "" keeps all.
func (p *ReservationsPanel) Filter(status string) []domain.Reservation {
	all := p.Items()
	if status == "" || status == StatusFilterAll {
		return all
	}
	filtered := make([]domain.Reservation, 0, len(all))
	for _, r := range all {
		if string(r.Status) == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (c *Controller) ReservationsByStatus(filter string) []domain.Reservation {
	return c.Reservations.Filter(filter)
}
