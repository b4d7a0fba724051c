package sections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bella-vista/client"
	"bella-vista/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const CategoryAll = "All"

var Categories = []string{CategoryAll, "Starters", "Mains", "Desserts", "Beverages"}

// TimeSlots are the bookable seatings, every half hour from 17:00 to 22:00.
var TimeSlots = []string{
	"17:00", "17:30", "18:00", "18:30", "19:00", "19:30",
	"20:00", "20:30", "21:00", "21:30", "22:00",
}

const (
	MinGuests = 1
	MaxGuests = 8

	anonymous     = "Anonymous"
	defaultRating = 5
)

type ReservationCreator interface {
	Create(ctx context.Context, input domain.ReservationInput) (*domain.Reservation, error)
}

type SectionsInterface interface {
	Menu(ctx context.Context, category string) (*MenuView, error)
	Gallery(ctx context.Context) *GalleryView
	Testimonials(ctx context.Context) *TestimonialsView
	BookTable(ctx context.Context, req ReservationRequest) (*domain.Reservation, error)
}

var _ SectionsInterface = (*Sections)(nil)

type Readers struct {
	Menu         client.Reader[domain.MenuItem]
	Gallery      client.Reader[domain.GalleryItem]
	Testimonials client.Reader[domain.Testimonial]
}

// Sections feeds the public pages. Reads never fail: an unreachable or empty
// source is replaced by the bundled content.
type Sections struct {
	readers      Readers
	reservations ReservationCreator
	logger       *zap.Logger
}

func NewSections(readers Readers, reservations ReservationCreator, logger *zap.Logger) *Sections {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sections{readers: readers, reservations: reservations, logger: logger}
}

// NewFallbackReaders wires the remote set behind the mirror for read-only use.
// mirror may be nil.
func NewFallbackReaders(remote client.Set, mirror *client.LocalSet, logger *zap.Logger) Readers {
	if mirror == nil {
		return Readers{
			Menu:         client.WithFallback[domain.MenuItem](domain.ResourceMenu, remote.Menu, nil, client.DefaultMenu(), logger),
			Gallery:      client.WithFallback[domain.GalleryItem](domain.ResourceGallery, remote.Gallery, nil, client.DefaultGallery(), logger),
			Testimonials: client.WithFallback[domain.Testimonial](domain.ResourceTestimonials, remote.Testimonials, nil, client.DefaultTestimonials(), logger),
		}
	}
	return Readers{
		Menu:         client.WithFallback[domain.MenuItem](domain.ResourceMenu, remote.Menu, mirror.Menu, client.DefaultMenu(), logger),
		Gallery:      client.WithFallback[domain.GalleryItem](domain.ResourceGallery, remote.Gallery, mirror.Gallery, client.DefaultGallery(), logger),
		Testimonials: client.WithFallback[domain.Testimonial](domain.ResourceTestimonials, remote.Testimonials, mirror.Testimonials, client.DefaultTestimonials(), logger),
	}
}

func readOrDefault[T any](ctx context.Context, logger *zap.Logger, resource string, reader client.Reader[T], defaults []T) []T {
	items, err := reader.GetAll(ctx)
	if err != nil {
		logger.Warn("section read failed", zap.String("resource", resource), zap.Error(err))
		return defaults
	}
	if len(items) == 0 {
		return defaults
	}
	return items
}

type MenuView struct {
	Categories []string          `json:"categories"`
	Active     string            `json:"active"`
	Items      []domain.MenuItem `json:"items"`
}

// Menu lists available items in category. An empty category means All.
func (s *Sections) Menu(ctx context.Context, category string) (*MenuView, error) {
	active, ok := matchCategory(category)
	if !ok {
		return nil, domain.NewValidationError("unknown category", domain.FieldError{
			Field:   "category",
			Message: "must be one of: " + strings.Join(Categories, ", "),
		})
	}

	all := readOrDefault(ctx, s.logger, domain.ResourceMenu, s.readers.Menu, client.DefaultMenu())
	items := make([]domain.MenuItem, 0, len(all))
	for _, item := range all {
		if !item.Available {
			continue
		}
		if active != CategoryAll && item.Category != active {
			continue
		}
		items = append(items, item)
	}
	return &MenuView{Categories: Categories, Active: active, Items: items}, nil
}

func matchCategory(category string) (string, bool) {
	if category == "" {
		return CategoryAll, true
	}
	for _, c := range Categories {
		if strings.EqualFold(c, category) {
			return c, true
		}
	}
	return "", false
}

type GalleryView struct {
	Items []domain.GalleryItem `json:"items"`
}

func (s *Sections) Gallery(ctx context.Context) *GalleryView {
	items := readOrDefault(ctx, s.logger, domain.ResourceGallery, s.readers.Gallery, client.DefaultGallery())
	shown := make([]domain.GalleryItem, 0, len(items))
	for _, item := range items {
		if item.URL == "" {
			continue
		}
		if item.Alt == "" {
			item.Alt = item.Title
		}
		shown = append(shown, item)
	}
	return &GalleryView{Items: shown}
}

type TestimonialsView struct {
	Items         []domain.Testimonial `json:"items"`
	AverageRating decimal.Decimal      `json:"averageRating"`
}

func (s *Sections) Testimonials(ctx context.Context) *TestimonialsView {
	items := readOrDefault(ctx, s.logger, domain.ResourceTestimonials, s.readers.Testimonials, client.DefaultTestimonials())

	shown := make([]domain.Testimonial, 0, len(items))
	total := 0
	for _, t := range items {
		if strings.TrimSpace(t.Name) == "" {
			t.Name = anonymous
		}
		if t.Rating == 0 {
			t.Rating = defaultRating
		}
		total += t.Rating
		shown = append(shown, t)
	}

	average := decimal.Zero
	if len(shown) > 0 {
		average = decimal.NewFromInt(int64(total)).DivRound(decimal.NewFromInt(int64(len(shown))), 1)
	}
	return &TestimonialsView{Items: shown, AverageRating: average}
}

// ReservationRequest is the public booking form.
type ReservationRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Date   string `json:"date" validate:"required,yyyymmdd"`
	Time   string `json:"time" validate:"required,hhmm"`
	Guests int    `json:"guests" validate:"required"`
}

// BookTable validates the form and creates a pending reservation. Writes go
// straight to content-svc; there is no local fallback.
func (s *Sections) BookTable(ctx context.Context, req ReservationRequest) (*domain.Reservation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	created, err := s.reservations.Create(ctx, domain.ReservationInput{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		Date:   req.Date,
		Time:   req.Time,
		Guests: req.Guests,
		Status: domain.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("book table: %w", err)
	}
	s.logger.Info("reservation requested",
		zap.String("id", created.ID),
		zap.String("date", created.Date),
		zap.String("time", created.Time),
		zap.Int("guests", created.Guests))
	return created, nil
}

func validateRequest(req ReservationRequest) error {
	var fields []domain.FieldError
	if err := domain.Validate(req); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fields = append(fields, verr.Fields...)
	}

	if req.Time != "" && !isTimeSlot(req.Time) && !hasField(fields, "time") {
		fields = append(fields, domain.FieldError{
			Field:   "time",
			Message: fmt.Sprintf("must be a seating between %s and %s", TimeSlots[0], TimeSlots[len(TimeSlots)-1]),
		})
	}
	if req.Guests != 0 && (req.Guests < MinGuests || req.Guests > MaxGuests) {
		fields = append(fields, domain.FieldError{
			Field:   "guests",
			Message: fmt.Sprintf("must be between %d and %d", MinGuests, MaxGuests),
		})
	}

	if len(fields) > 0 {
		return domain.NewValidationError("invalid reservation", fields...)
	}
	return nil
}

func isTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

func hasField(fields []domain.FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}
