package client

import (
	"fmt"

	"bella-vista/domain"

	"github.com/shopspring/decimal"
)

// Bundled content shown by the public site whenever neither content-svc nor
// the mirror can answer, and used to seed an empty mirror.

func DefaultMenu() []domain.MenuItem {
	item := func(id, name, category, price, description string) domain.MenuItem {
		return domain.MenuItem{
			ID:          id,
			Name:        name,
			Category:    category,
			Price:       decimal.RequireFromString(price),
			Description: description,
			Available:   true,
		}
	}
	return []domain.MenuItem{
		item("menu-1", "Pan-Seared Scallops", "Starters", "28", "Fresh scallops with cauliflower puree and crispy pancetta"),
		item("menu-2", "Truffle Risotto", "Mains", "32", "Creamy arborio rice with black truffle and aged parmesan"),
		item("menu-3", "Wagyu Beef Tenderloin", "Mains", "65", "Premium wagyu with roasted vegetables and red wine jus"),
		item("menu-4", "Chocolate Soufflé", "Desserts", "16", "Rich dark chocolate soufflé with vanilla bean ice cream"),
		item("menu-5", "Burrata Caprese", "Starters", "22", "Fresh burrata with heirloom tomatoes and basil oil"),
		item("menu-6", "Sommelier Selection Wine", "Beverages", "18", "Curated wine pairing selected by our expert sommelier"),
	}
}

func pexelsURL(photo int) string {
	return fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop", photo, photo)
}

func DefaultGallery() []domain.GalleryItem {
	photos := []struct {
		id    int
		title string
	}{
		{958545, "Elegant dining room"},
		{1640777, "Signature dish preparation"},
		{2467287, "Wine cellar"},
		{1640774, "Fresh ingredients"},
		{696218, "Private dining area"},
		{1435904, "Artisanal dessert"},
	}
	items := make([]domain.GalleryItem, 0, len(photos))
	for i, p := range photos {
		items = append(items, domain.GalleryItem{
			ID:    fmt.Sprintf("gallery-%d", i+1),
			Title: p.title,
			URL:   pexelsURL(p.id),
			Alt:   p.title,
		})
	}
	return items
}

func DefaultTestimonials() []domain.Testimonial {
	return []domain.Testimonial{
		{
			ID: "testimonial-1", Name: "Sarah Johnson", Rating: 5, Date: "2024-01-10",
			Comment: "Bella Vista delivers an exceptional dining experience that surpasses expectations. The attention to detail in every dish is remarkable.",
		},
		{
			ID: "testimonial-2", Name: "Michael Chen", Rating: 5, Date: "2024-01-08",
			Comment: "From the moment you walk in, you know you are in for something special. The service is impeccable and the food is extraordinary.",
		},
		{
			ID: "testimonial-3", Name: "Emma Rodriguez", Rating: 5, Date: "2024-01-05",
			Comment: "Perfect for both intimate dinners and business meetings. The ambiance is sophisticated and the cuisine is world-class.",
		},
	}
}

func DefaultReservations() []domain.Reservation {
	return []domain.Reservation{
		{ID: "reservation-1", Name: "John Doe", Email: "john@example.com", Date: "2024-01-15", Time: "19:00", Guests: 4, Status: domain.StatusConfirmed},
		{ID: "reservation-2", Name: "Jane Smith", Email: "jane@example.com", Date: "2024-01-16", Time: "20:00", Guests: 2, Status: domain.StatusPending},
		{ID: "reservation-3", Name: "Mike Johnson", Email: "mike@example.com", Date: "2024-01-17", Time: "18:30", Guests: 6, Status: domain.StatusConfirmed},
	}
}
