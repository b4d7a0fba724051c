package controller

import (
	"strconv"
	"strings"

	"bella-vista/domain"

	"github.com/shopspring/decimal"
)

// Form values arrive as text from the console. Each form converts to a
// create input or a full-field patch; domain validation runs in the backend.

func invalid(field, message string) error {
	return domain.NewValidationError("invalid form", domain.FieldError{Field: field, Message: message})
}

type MenuForm struct {
	Name        string
	Category    string
	Price       string
	Description string
	Available   bool
}

func MenuFormFrom(item domain.MenuItem) MenuForm {
	return MenuForm{
		Name:        item.Name,
		Category:    item.Category,
		Price:       item.Price.StringFixed(2),
		Description: item.Description,
		Available:   item.Available,
	}
}

func (f MenuForm) price() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		return decimal.Zero, invalid("price", "must be a number")
	}
	return price, nil
}

func (f MenuForm) Input() (domain.MenuItemInput, error) {
	price, err := f.price()
	if err != nil {
		return domain.MenuItemInput{}, err
	}
	available := f.Available
	return domain.MenuItemInput{
		Name:        strings.TrimSpace(f.Name),
		Category:    strings.TrimSpace(f.Category),
		Price:       &price,
		Description: f.Description,
		Available:   &available,
	}, nil
}

func (f MenuForm) Patch() (domain.MenuItemPatch, error) {
	in, err := f.Input()
	if err != nil {
		return domain.MenuItemPatch{}, err
	}
	return domain.MenuItemPatch{
		Name:        &in.Name,
		Category:    &in.Category,
		Price:       in.Price,
		Description: &in.Description,
		Available:   in.Available,
	}, nil
}

type ReservationForm struct {
	Name   string
	Email  string
	Date   string
	Time   string
	Guests string
	Status string
}

func ReservationFormFrom(r domain.Reservation) ReservationForm {
	return ReservationForm{
		Name:   r.Name,
		Email:  r.Email,
		Date:   r.Date,
		Time:   r.Time,
		Guests: strconv.Itoa(r.Guests),
		Status: string(r.Status),
	}
}

func (f ReservationForm) Input() (domain.ReservationInput, error) {
	guests, err := strconv.Atoi(strings.TrimSpace(f.Guests))
	if err != nil {
		return domain.ReservationInput{}, invalid("guests", "must be a whole number")
	}
	return domain.ReservationInput{
		Name:   strings.TrimSpace(f.Name),
		Email:  strings.TrimSpace(f.Email),
		Date:   strings.TrimSpace(f.Date),
		Time:   strings.TrimSpace(f.Time),
		Guests: guests,
		Status: domain.ReservationStatus(strings.TrimSpace(f.Status)),
	}, nil
}

func (f ReservationForm) Patch() (domain.ReservationPatch, error) {
	in, err := f.Input()
	if err != nil {
		return domain.ReservationPatch{}, err
	}
	patch := domain.ReservationPatch{
		Name:   &in.Name,
		Email:  &in.Email,
		Date:   &in.Date,
		Time:   &in.Time,
		Guests: &in.Guests,
	}
	if in.Status != "" {
		patch.Status = &in.Status
	}
	return patch, nil
}

type GalleryForm struct {
	Title string
	URL   string
	Alt   string
}

func GalleryFormFrom(g domain.GalleryItem) GalleryForm {
	return GalleryForm{Title: g.Title, URL: g.URL, Alt: g.Alt}
}

func (f GalleryForm) Input() (domain.GalleryItemInput, error) {
	return domain.GalleryItemInput{
		Title: strings.TrimSpace(f.Title),
		URL:   strings.TrimSpace(f.URL),
		Alt:   f.Alt,
	}, nil
}

func (f GalleryForm) Patch() (domain.GalleryItemPatch, error) {
	in, _ := f.Input()
	return domain.GalleryItemPatch{Title: &in.Title, URL: &in.URL, Alt: &in.Alt}, nil
}

type TestimonialForm struct {
	Name    string
	Rating  string
	Comment string
}

func TestimonialFormFrom(t domain.Testimonial) TestimonialForm {
	return TestimonialForm{Name: t.Name, Rating: strconv.Itoa(t.Rating), Comment: t.Comment}
}

func (f TestimonialForm) Input() (domain.TestimonialInput, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(f.Rating))
	if err != nil {
		return domain.TestimonialInput{}, invalid("rating", "must be a whole number from 1 to 5")
	}
	return domain.TestimonialInput{
		Name:    strings.TrimSpace(f.Name),
		Rating:  rating,
		Comment: strings.TrimSpace(f.Comment),
	}, nil
}

func (f TestimonialForm) Patch() (domain.TestimonialPatch, error) {
	in, err := f.Input()
	if err != nil {
		return domain.TestimonialPatch{}, err
	}
	return domain.TestimonialPatch{Name: &in.Name, Rating: &in.Rating, Comment: &in.Comment}, nil
}
