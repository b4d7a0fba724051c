package service

import (
	"context"

	"bella-vista/domain"
)

// Collection is the storage contract for one resource kind.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, record T) error
	Update(ctx context.Context, id string, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ListCache holds list responses. Generation moves on every Invalidate, and
// Set drops the value when the generation differs from the one passed in.
type ListCache interface {
	Get(ctx context.Context, resource string, dst any) (bool, error)
	Generation(ctx context.Context, resource string) (int64, error)
	Set(ctx context.Context, resource string, generation int64, value any) error
	Invalidate(ctx context.Context, resource string) error
}

type EventPublisher interface {
	PublishChange(ctx context.Context, event domain.ChangeEvent) error
}

type QRGenerator interface {
	Generate(reservationID string) ([]byte, error)
}

type ResourceService[T any, In any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, input In) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) error
}

type MenuServiceInterface = ResourceService[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch]

type GalleryServiceInterface = ResourceService[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch]

type TestimonialServiceInterface = ResourceService[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch]

type ReservationServiceInterface interface {
	ResourceService[domain.Reservation, domain.ReservationInput, domain.ReservationPatch]
	QRCode(ctx context.Context, id string) ([]byte, error)
}

var (
	_ MenuServiceInterface        = (*MenuService)(nil)
	_ GalleryServiceInterface     = (*GalleryService)(nil)
	_ TestimonialServiceInterface = (*TestimonialService)(nil)
	_ ReservationServiceInterface = (*ReservationService)(nil)
)
