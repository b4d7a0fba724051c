package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Input is a validated create payload that can be turned into a record.
type Input[T any] interface {
	Record(id string, now time.Time) T
}

// Patch is a partial update: only non-nil fields are applied.
type Patch[T any] interface {
	Fields() map[string]any
	Apply(record *T)
}

type MenuItemInput struct {
	Name        string           `json:"name" validate:"required"`
	Category    string           `json:"category" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Description string           `json:"description"`
	Available   *bool            `json:"available"`
}

func (in MenuItemInput) Record(id string, _ time.Time) MenuItem {
	item := MenuItem{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Available:   true,
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	return item
}

type MenuItemPatch struct {
	Name        *string          `json:"name" validate:"omitnil,min=1"`
	Category    *string          `json:"category" validate:"omitnil,min=1"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gte=0"`
	Description *string          `json:"description"`
	Available   *bool            `json:"available"`
}

func (p MenuItemPatch) Fields() map[string]any {
	fields := map[string]any{}
	setField(fields, "name", p.Name)
	setField(fields, "category", p.Category)
	setField(fields, "price", p.Price)
	setField(fields, "description", p.Description)
	setField(fields, "available", p.Available)
	return fields
}

func (p MenuItemPatch) Apply(item *MenuItem) {
	applyField(&item.Name, p.Name)
	applyField(&item.Category, p.Category)
	applyField(&item.Price, p.Price)
	applyField(&item.Description, p.Description)
	applyField(&item.Available, p.Available)
}

type ReservationInput struct {
	Name   string            `json:"name" validate:"required"`
	Email  string            `json:"email" validate:"required,email"`
	Date   string            `json:"date" validate:"required,yyyymmdd"`
	Time   string            `json:"time" validate:"required,hhmm"`
	Guests int               `json:"guests" validate:"required,min=1"`
	Status ReservationStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

func (in ReservationInput) Record(id string, _ time.Time) Reservation {
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	return Reservation{
		ID:     id,
		Name:   in.Name,
		Email:  in.Email,
		Date:   in.Date,
		Time:   in.Time,
		Guests: in.Guests,
		Status: status,
	}
}

type ReservationPatch struct {
	Name   *string            `json:"name" validate:"omitnil,min=1"`
	Email  *string            `json:"email" validate:"omitnil,email"`
	Date   *string            `json:"date" validate:"omitnil,yyyymmdd"`
	Time   *string            `json:"time" validate:"omitnil,hhmm"`
	Guests *int               `json:"guests" validate:"omitnil,min=1"`
	Status *ReservationStatus `json:"status" validate:"omitnil,oneof=pending confirmed cancelled"`
}

func (p ReservationPatch) Fields() map[string]any {
	fields := map[string]any{}
	setField(fields, "name", p.Name)
	setField(fields, "email", p.Email)
	setField(fields, "date", p.Date)
	setField(fields, "time", p.Time)
	setField(fields, "guests", p.Guests)
	setField(fields, "status", p.Status)
	return fields
}

func (p ReservationPatch) Apply(r *Reservation) {
	applyField(&r.Name, p.Name)
	applyField(&r.Email, p.Email)
	applyField(&r.Date, p.Date)
	applyField(&r.Time, p.Time)
	applyField(&r.Guests, p.Guests)
	applyField(&r.Status, p.Status)
}

type GalleryItemInput struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required"`
	Alt   string `json:"alt"`
}

func (in GalleryItemInput) Record(id string, _ time.Time) GalleryItem {
	return GalleryItem{ID: id, Title: in.Title, URL: in.URL, Alt: in.Alt}
}

type GalleryItemPatch struct {
	Title *string `json:"title" validate:"omitnil,min=1"`
	URL   *string `json:"url" validate:"omitnil,min=1"`
	Alt   *string `json:"alt"`
}

func (p GalleryItemPatch) Fields() map[string]any {
	fields := map[string]any{}
	setField(fields, "title", p.Title)
	setField(fields, "url", p.URL)
	setField(fields, "alt", p.Alt)
	return fields
}

func (p GalleryItemPatch) Apply(g *GalleryItem) {
	applyField(&g.Title, p.Title)
	applyField(&g.URL, p.URL)
	applyField(&g.Alt, p.Alt)
}

// TestimonialInput has no id or date: both are stamped server-side.
type TestimonialInput struct {
	Name    string `json:"name" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func (in TestimonialInput) Record(id string, now time.Time) Testimonial {
	return Testimonial{
		ID:      id,
		Name:    in.Name,
		Rating:  in.Rating,
		Comment: in.Comment,
		Date:    now.Format(DateLayout),
	}
}

// TestimonialPatch has no date field; the creation date is immutable.
type TestimonialPatch struct {
	Name    *string `json:"name" validate:"omitnil,min=1"`
	Rating  *int    `json:"rating" validate:"omitnil,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitnil,min=1"`
}

func (p TestimonialPatch) Fields() map[string]any {
	fields := map[string]any{}
	setField(fields, "name", p.Name)
	setField(fields, "rating", p.Rating)
	setField(fields, "comment", p.Comment)
	return fields
}

func (p TestimonialPatch) Apply(t *Testimonial) {
	applyField(&t.Name, p.Name)
	applyField(&t.Rating, p.Rating)
	applyField(&t.Comment, p.Comment)
}

func setField[V any](fields map[string]any, key string, value *V) {
	if value != nil {
		fields[key] = *value
	}
}

func applyField[V any](dst *V, value *V) {
	if value != nil {
		*dst = *value
	}
}
