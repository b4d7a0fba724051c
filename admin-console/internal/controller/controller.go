package controller

import (
	"context"
	"fmt"

	"bella-vista/client"
	"bella-vista/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DashboardRecent is how many reservations the dashboard lists.
	DashboardRecent = 3
	activityLimit   = 10
)

// revenueMultiplier turns the sum of menu prices into the dashboard's
// revenue figure. The figure is decorative and not derived from sales.
var revenueMultiplier = decimal.NewFromInt(10)

type DashboardStats struct {
	TotalReservations   int
	PendingReservations int
	MenuItems           int
	GalleryImages       int
	Testimonials        int
	PlaceholderRevenue  decimal.Decimal
}

type Controller struct {
	store    *Store
	set      client.Set
	activity ActivityFeed
	logger   *zap.Logger

	Menu         *MenuPanel
	Reservations *ReservationsPanel
	Gallery      *GalleryPanel
	Testimonials *TestimonialsPanel
}

// New wires the panels to set. activity may be nil to disable the feed.
func New(store *Store, set client.Set, activity ActivityFeed, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{store: store, set: set, activity: activity, logger: logger}

	c.Menu = newPanel[domain.MenuItem, domain.MenuItemInput, domain.MenuItemPatch](
		PanelMenu, store, set.Menu, store.Menu, store.mutateMenu)
	c.Reservations = &ReservationsPanel{newPanel[domain.Reservation, domain.ReservationInput, domain.ReservationPatch](
		PanelReservations, store, set.Reservations, store.Reservations, store.mutateReservations)}
	c.Gallery = newPanel[domain.GalleryItem, domain.GalleryItemInput, domain.GalleryItemPatch](
		PanelGallery, store, set.Gallery, store.Gallery, store.mutateGallery)
	c.Testimonials = newPanel[domain.Testimonial, domain.TestimonialInput, domain.TestimonialPatch](
		PanelTestimonials, store, set.Testimonials, store.Testimonials, store.mutateTestimonials)
	return c
}

func (c *Controller) Store() *Store {
	return c.store
}

// Load fetches the four lists concurrently and waits for all of them.
// Successful lists replace the stored ones; each failure is recorded on its
// panel and the first one is returned.
func (c *Controller) Load(ctx context.Context) error {
	c.store.setLoading(true)
	defer c.store.setLoading(false)

	var g errgroup.Group
	g.Go(func() error {
		return loadInto(ctx, c.store, PanelMenu, c.set.Menu, c.store.setMenu)
	})
	g.Go(func() error {
		return loadInto(ctx, c.store, PanelReservations, c.set.Reservations, c.store.setReservations)
	})
	g.Go(func() error {
		return loadInto(ctx, c.store, PanelGallery, c.set.Gallery, c.store.setGallery)
	})
	g.Go(func() error {
		return loadInto(ctx, c.store, PanelTestimonials, c.set.Testimonials, c.store.setTestimonials)
	})
	if c.activity != nil {
		g.Go(func() error {
			c.refreshActivity(ctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Warn("admin load incomplete", zap.Error(err))
		return err
	}
	return nil
}

func loadInto[T any](ctx context.Context, store *Store, panel PanelName, reader client.Reader[T], set func([]T)) error {
	items, err := reader.GetAll(ctx)
	if err != nil {
		store.setErr(panel, err)
		return fmt.Errorf("load %s: %w", panel, err)
	}
	set(items)
	store.setErr(panel, nil)
	return nil
}

// refreshActivity never fails the caller: the feed is left empty instead.
func (c *Controller) refreshActivity(ctx context.Context) {
	events, err := c.activity.Recent(ctx, activityLimit)
	if err != nil {
		c.logger.Warn("activity feed unavailable", zap.Error(err))
		c.store.setActivity(nil)
		c.store.setErr(PanelActivity, err)
		return
	}
	c.store.setActivity(events)
	c.store.setErr(PanelActivity, nil)
}

func (c *Controller) Stats() DashboardStats {
	menu := c.store.Menu()
	reservations := c.store.Reservations()

	stats := DashboardStats{
		TotalReservations:  len(reservations),
		MenuItems:          len(menu),
		GalleryImages:      len(c.store.Gallery()),
		Testimonials:       len(c.store.Testimonials()),
		PlaceholderRevenue: decimal.Zero,
	}
	for _, r := range reservations {
		if r.Status == domain.StatusPending {
			stats.PendingReservations++
		}
	}
	for _, item := range menu {
		stats.PlaceholderRevenue = stats.PlaceholderRevenue.Add(item.Price)
	}
	stats.PlaceholderRevenue = stats.PlaceholderRevenue.Mul(revenueMultiplier)
	return stats
}

// RecentReservations returns the first n reservations in stored order.
func (c *Controller) RecentReservations(n int) []domain.Reservation {
	reservations := c.store.Reservations()
	if n < 0 {
		n = 0
	}
	if n < len(reservations) {
		reservations = reservations[:n]
	}
	return reservations
}
