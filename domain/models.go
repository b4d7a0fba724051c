package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as plain JSON numbers ("price": 9.5).
	decimal.MarshalJSONWithoutQuotes = true
}

// Resource names double as URL segments and collection names.
const (
	ResourceMenu         = "menu"
	ResourceReservations = "reservations"
	ResourceGallery      = "gallery"
	ResourceTestimonials = "testimonials"
)

var Resources = []string{ResourceMenu, ResourceReservations, ResourceGallery, ResourceTestimonials}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// CanTransition reports whether a reservation may move from s to next.
// Re-applying the current status is allowed and changes nothing.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	}
	return false
}

type MenuItem struct {
	ID          string          `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	Category    string          `json:"category" bson:"category"`
	Price       decimal.Decimal `json:"price" bson:"price"`
	Description string          `json:"description" bson:"description"`
	Available   bool            `json:"available" bson:"available"`
}

type Reservation struct {
	ID     string            `json:"id" bson:"_id"`
	Name   string            `json:"name" bson:"name"`
	Email  string            `json:"email" bson:"email"`
	Date   string            `json:"date" bson:"date"`
	Time   string            `json:"time" bson:"time"`
	Guests int               `json:"guests" bson:"guests"`
	Status ReservationStatus `json:"status" bson:"status"`
}

type GalleryItem struct {
	ID    string `json:"id" bson:"_id"`
	Title string `json:"title" bson:"title"`
	URL   string `json:"url" bson:"url"`
	Alt   string `json:"alt" bson:"alt"`
}

type Testimonial struct {
	ID      string `json:"id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Rating  int    `json:"rating" bson:"rating"`
	Comment string `json:"comment" bson:"comment"`
	Date    string `json:"date" bson:"date"`
}

// Identifiable is satisfied by every stored record.
type Identifiable interface {
	GetID() string
}

func (m MenuItem) GetID() string    { return m.ID }
func (r Reservation) GetID() string { return r.ID }
func (g GalleryItem) GetID() string { return g.ID }
func (t Testimonial) GetID() string { return t.ID }
