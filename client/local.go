package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"bella-vista/domain"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Mirror is a SQLite file holding one JSON list per resource kind.
type Mirror struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenMirror(path string) (*Mirror, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS resource_mirror (
		resource   TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create mirror table: %w", err)
	}
	return &Mirror{db: db}, nil
}

func (m *Mirror) Close() error {
	return m.db.Close()
}

func (m *Mirror) load(ctx context.Context, resource string, dst any) (bool, error) {
	var payload string
	err := m.db.QueryRowContext(ctx, `SELECT payload FROM resource_mirror WHERE resource = ?`, resource).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read mirror %s: %v", domain.ErrStorageUnavailable, resource, err)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return false, fmt.Errorf("decode mirror %s: %w", resource, err)
	}
	return true, nil
}

func (m *Mirror) save(ctx context.Context, resource string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode mirror %s: %w", resource, err)
	}
	_, err = m.db.ExecContext(ctx, `
		INSERT INTO resource_mirror (resource, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, resource, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: write mirror %s: %v", domain.ErrStorageUnavailable, resource, err)
	}
	return nil
}

// Local is a Resource kept entirely in the mirror. The first read of a kind
// that has never been stored seeds it with the bundled defaults.
type Local[T domain.Identifiable, In domain.Input[T], P domain.Patch[T]] struct {
	mirror   *Mirror
	resource string
	defaults []T
	guard    func(current T, patch P) error

	NewID func() string
	Now   func() time.Time
}

func NewLocal[T domain.Identifiable, In domain.Input[T], P domain.Patch[T]](mirror *Mirror, resource string, defaults []T) *Local[T, In, P] {
	return &Local[T, In, P]{
		mirror:   mirror,
		resource: resource,
		defaults: defaults,
		NewID:    uuid.NewString,
		Now:      time.Now,
	}
}

func NewLocalSet(mirror *Mirror) *LocalSet {
	reservations := NewLocal[domain.Reservation, domain.ReservationInput, domain.ReservationPatch](
		mirror, domain.ResourceReservations, DefaultReservations())
	reservations.guard = func(current domain.Reservation, patch domain.ReservationPatch) error {
		if patch.Status != nil && !current.Status.CanTransition(*patch.Status) {
			return domain.NewValidationError("invalid status transition", domain.FieldError{
				Field:   "status",
				Message: fmt.Sprintf("cannot change status from %s to %s", current.Status, *patch.Status),
			})
		}
		return nil
	}

	return &LocalSet{
		Menu:         NewLocal[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch](mirror, domain.ResourceMenu, DefaultMenu()),
		Reservations: reservations,
		Gallery:      NewLocal[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch](mirror, domain.ResourceGallery, DefaultGallery()),
		Testimonials: NewLocal[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch](mirror, domain.ResourceTestimonials, DefaultTestimonials()),
	}
}

func (l *Local[T, In, P]) Defaults() []T {
	return append([]T{}, l.defaults...)
}

// list must be called with the mirror lock held.
func (l *Local[T, In, P]) list(ctx context.Context) ([]T, error) {
	var items []T
	found, err := l.mirror.load(ctx, l.resource, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		items = l.Defaults()
		if err := l.mirror.save(ctx, l.resource, items); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (l *Local[T, In, P]) GetAll(ctx context.Context) ([]T, error) {
	l.mirror.mu.Lock()
	defer l.mirror.mu.Unlock()
	return l.list(ctx)
}

// Replace overwrites the stored list, used to refresh the mirror after a
// successful remote read.
func (l *Local[T, In, P]) Replace(ctx context.Context, items []T) error {
	l.mirror.mu.Lock()
	defer l.mirror.mu.Unlock()
	return l.mirror.save(ctx, l.resource, items)
}

func (l *Local[T, In, P]) Create(ctx context.Context, input In) (*T, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	l.mirror.mu.Lock()
	defer l.mirror.mu.Unlock()

	items, err := l.list(ctx)
	if err != nil {
		return nil, err
	}
	record := input.Record(l.NewID(), l.Now())
	if err := l.mirror.save(ctx, l.resource, append(items, record)); err != nil {
		return nil, err
	}
	return &record, nil
}

func (l *Local[T, In, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	if err := domain.Validate(patch); err != nil {
		return nil, err
	}

	l.mirror.mu.Lock()
	defer l.mirror.mu.Unlock()

	items, err := l.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].GetID() != id {
			continue
		}
		if l.guard != nil {
			if err := l.guard(items[i], patch); err != nil {
				return nil, err
			}
		}
		patch.Apply(&items[i])
		if err := l.mirror.save(ctx, l.resource, items); err != nil {
			return nil, err
		}
		updated := items[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("%s %q: %w", l.resource, id, domain.ErrNotFound)
}

func (l *Local[T, In, P]) Delete(ctx context.Context, id string) error {
	l.mirror.mu.Lock()
	defer l.mirror.mu.Unlock()

	items, err := l.list(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return l.mirror.save(ctx, l.resource, kept)
}
