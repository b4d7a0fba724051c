package controller

import (
	"sync"

	"bella-vista/domain"
)

type PanelName string

const (
	PanelMenu         PanelName = "menu"
	PanelReservations PanelName = "reservations"
	PanelGallery      PanelName = "gallery"
	PanelTestimonials PanelName = "testimonials"
	PanelActivity     PanelName = "activity"
)

// Store is the admin console state. Accessors return copies so callers can
// hold results across later writes.
type Store struct {
	mu sync.RWMutex

	menu         []domain.MenuItem
	reservations []domain.Reservation
	gallery      []domain.GalleryItem
	testimonials []domain.Testimonial
	activity     []domain.ChangeEvent

	loading bool
	errors  map[PanelName]error
}

func NewStore() *Store {
	return &Store{errors: make(map[PanelName]error)}
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Err is the last failure recorded for panel, nil once a later call succeeds.
func (s *Store) Err(panel PanelName) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[panel]
}

func (s *Store) setErr(panel PanelName, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errors, panel)
		return
	}
	s.errors[panel] = err
}

func (s *Store) Menu() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MenuItem{}, s.menu...)
}

func (s *Store) Reservations() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Reservation{}, s.reservations...)
}

func (s *Store) Gallery() []domain.GalleryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.GalleryItem{}, s.gallery...)
}

func (s *Store) Testimonials() []domain.Testimonial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Testimonial{}, s.testimonials...)
}

func (s *Store) Activity() []domain.ChangeEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ChangeEvent{}, s.activity...)
}

func (s *Store) setMenu(items []domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = items
}

func (s *Store) setReservations(items []domain.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = items
}

func (s *Store) setGallery(items []domain.GalleryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gallery = items
}

func (s *Store) setTestimonials(items []domain.Testimonial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testimonials = items
}

func (s *Store) setActivity(events []domain.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = events
}

// mutateList runs fn on the stored list under the write lock, so concurrent
// panel writes each see the result of the one before.
func mutateList[T any](s *Store, list *[]T, fn func([]T) []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*list = fn(append([]T{}, (*list)...))
}

func (s *Store) mutateMenu(fn func([]domain.MenuItem) []domain.MenuItem) {
	mutateList(s, &s.menu, fn)
}

func (s *Store) mutateReservations(fn func([]domain.Reservation) []domain.Reservation) {
	mutateList(s, &s.reservations, fn)
}

func (s *Store) mutateGallery(fn func([]domain.GalleryItem) []domain.GalleryItem) {
	mutateList(s, &s.gallery, fn)
}

func (s *Store) mutateTestimonials(fn func([]domain.Testimonial) []domain.Testimonial) {
	mutateList(s, &s.testimonials, fn)
}
