// Package client is the resource client API shared by the admin console and
// the public site. Every resource kind is reachable through the same four
// operations, backed either by content-svc over HTTP or by a local SQLite
// mirror.
package client

import (
	"context"
	"fmt"
	"net/http"

	"bella-vista/config"
	"bella-vista/domain"

	"go.uber.org/zap"
)

const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

type Resource[T any, In any, P any] interface {
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, input In) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Reader is the read-only view used by public pages.
type Reader[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
}

type (
	MenuResource        = Resource[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch]
	ReservationResource = Resource[domain.Reservation, domain.ReservationInput, domain.ReservationPatch]
	GalleryResource     = Resource[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch]
	TestimonialResource = Resource[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch]
)

// Set groups one resource per kind.
type Set struct {
	Menu         MenuResource
	Reservations ReservationResource
	Gallery      GalleryResource
	Testimonials TestimonialResource
}

type LocalSet struct {
	Menu         *Local[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch]
	Reservations *Local[domain.Reservation, domain.ReservationInput, domain.ReservationPatch]
	Gallery      *Local[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch]
	Testimonials *Local[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch]
}

// Resources is what New hands out: the selected backend plus the mirror,
// which is nil when it could not be opened in remote mode.
type Resources struct {
	Set
	Mirror *LocalSet

	mirrorDB *Mirror
}

func (r *Resources) Close() error {
	if r.mirrorDB == nil {
		return nil
	}
	return r.mirrorDB.Close()
}

// New builds the resources for cfg.Client.Backend.
func New(cfg *config.Config, logger *zap.Logger) (*Resources, error) {
	res := &Resources{}

	mirror, err := OpenMirror(cfg.Client.MirrorPath)
	switch {
	case err == nil:
		res.mirrorDB = mirror
		res.Mirror = NewLocalSet(mirror)
	case cfg.Client.Backend == BackendLocal:
		return nil, fmt.Errorf("open local mirror: %w", err)
	default:
		logger.Warn("local mirror unavailable, fallback reads use bundled content", zap.Error(err))
	}

	switch cfg.Client.Backend {
	case BackendLocal:
		res.Set = Set{
			Menu:         res.Mirror.Menu,
			Reservations: res.Mirror.Reservations,
			Gallery:      res.Mirror.Gallery,
			Testimonials: res.Mirror.Testimonials,
		}
	case BackendRemote, "":
		res.Set = NewRemoteSet(cfg.ContentSvcURL, &http.Client{Timeout: cfg.Client.Timeout})
	default:
		res.Close()
		return nil, fmt.Errorf("unknown client backend %q", cfg.Client.Backend)
	}
	return res, nil
}
