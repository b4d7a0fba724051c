package service

import (
	"context"
	"fmt"

	"bella-vista/domain"
)

type MenuService = Resource[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch]

type GalleryService = Resource[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch]

type TestimonialService = Resource[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch]

func NewMenuService(collection Collection[domain.MenuItem], deps Deps) *MenuService {
	return newResource[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch](domain.ResourceMenu, collection, deps)
}

func NewGalleryService(collection Collection[domain.GalleryItem], deps Deps) *GalleryService {
	return newResource[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch](domain.ResourceGallery, collection, deps)
}

func NewTestimonialService(collection Collection[domain.Testimonial], deps Deps) *TestimonialService {
	return newResource[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch](domain.ResourceTestimonials, collection, deps)
}

// ReservationService adds status transition checks and QR codes on top of
// the shared CRUD behaviour.
type ReservationService struct {
	*Resource[domain.Reservation, domain.ReservationInput, domain.ReservationPatch]
	qr QRGenerator
}

func NewReservationService(collection Collection[domain.Reservation], qr QRGenerator, deps Deps) *ReservationService {
	res := newResource[domain.Reservation, domain.ReservationInput, domain.ReservationPatch](domain.ResourceReservations, collection, deps)
	res.guard = checkTransition
	return &ReservationService{Resource: res, qr: qr}
}

func checkTransition(current domain.Reservation, patch domain.ReservationPatch) error {
	if patch.Status == nil {
		return nil
	}
	if !current.Status.CanTransition(*patch.Status) {
		return domain.NewValidationError("invalid status transition", domain.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("cannot change status from %s to %s", current.Status, *patch.Status),
		})
	}
	return nil
}

func (s *ReservationService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr code for reservation %q: %w", id, err)
	}
	return png, nil
}
