package ui

import (
	"strings"

	"bella-vista/admin-console/internal/controller"
	"bella-vista/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormModel is the add/edit dialog shared by every panel.
type FormModel struct {
	panel   controller.PanelName
	editing bool
	labels  []string
	inputs  []textinput.Model
	focused int
}

func newFormModel(panel controller.PanelName, editing bool, labels []string, values []string) *FormModel {
	inputs := make([]textinput.Model, len(labels))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 300
		inputs[i].Placeholder = labels[i]
		if i < len(values) {
			inputs[i].SetValue(values[i])
		}
	}
	inputs[0].Focus()
	return &FormModel{panel: panel, editing: editing, labels: labels, inputs: inputs}
}

func newMenuForm(item *domain.MenuItem) *FormModel {
	labels := []string{"Name *", "Category *", "Price *", "Description", "Available (y/n)"}
	values := []string{"", "", "", "", "y"}
	if item != nil {
		f := controller.MenuFormFrom(*item)
		values = []string{f.Name, f.Category, f.Price, f.Description, yesNo(f.Available)}
	}
	return newFormModel(controller.PanelMenu, item != nil, labels, values)
}

func newReservationForm(r *domain.Reservation) *FormModel {
	labels := []string{"Name *", "Email *", "Date (YYYY-MM-DD) *", "Time (HH:MM) *", "Guests *", "Status"}
	values := []string{"", "", "", "", "2", string(domain.StatusPending)}
	if r != nil {
		f := controller.ReservationFormFrom(*r)
		values = []string{f.Name, f.Email, f.Date, f.Time, f.Guests, f.Status}
	}
	return newFormModel(controller.PanelReservations, r != nil, labels, values)
}

func newGalleryForm(g *domain.GalleryItem) *FormModel {
	labels := []string{"Title *", "Image URL *", "Alt text"}
	var values []string
	if g != nil {
		f := controller.GalleryFormFrom(*g)
		values = []string{f.Title, f.URL, f.Alt}
	}
	return newFormModel(controller.PanelGallery, g != nil, labels, values)
}

func newTestimonialForm(t *domain.Testimonial) *FormModel {
	labels := []string{"Name *", "Rating (1-5) *", "Comment *"}
	values := []string{"", "5", ""}
	if t != nil {
		f := controller.TestimonialFormFrom(*t)
		values = []string{f.Name, f.Rating, f.Comment}
	}
	return newFormModel(controller.PanelTestimonials, t != nil, labels, values)
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func (f *FormModel) value(i int) string {
	return f.inputs[i].Value()
}

func (f *FormModel) MenuForm() controller.MenuForm {
	available := strings.ToLower(strings.TrimSpace(f.value(4)))
	return controller.MenuForm{
		Name:        f.value(0),
		Category:    f.value(1),
		Price:       f.value(2),
		Description: f.value(3),
		Available:   available == "" || available == "y" || available == "yes",
	}
}

func (f *FormModel) ReservationForm() controller.ReservationForm {
	return controller.ReservationForm{
		Name: f.value(0), Email: f.value(1), Date: f.value(2), Time: f.value(3), Guests: f.value(4), Status: f.value(5),
	}
}

func (f *FormModel) GalleryForm() controller.GalleryForm {
	return controller.GalleryForm{Title: f.value(0), URL: f.value(1), Alt: f.value(2)}
}

func (f *FormModel) TestimonialForm() controller.TestimonialForm {
	return controller.TestimonialForm{Name: f.value(0), Rating: f.value(1), Comment: f.value(2)}
}

func (f *FormModel) move(delta int) {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focused].Focus()
}

func (f *FormModel) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (f *FormModel) View() string {
	title := "Add " + string(f.panel)
	if f.editing {
		title = "Edit " + string(f.panel)
	}

	var b strings.Builder
	b.WriteString(LabelStyle.Render(title))
	b.WriteString("\n\n")
	for i, label := range f.labels {
		marker := "  "
		if i == f.focused {
			marker = "> "
		}
		b.WriteString(marker + LabelStyle.Render(label) + "\n")
		b.WriteString("  " + f.inputs[i].View() + "\n\n")
	}
	b.WriteString(MutedStyle.Render("tab next field · enter save · esc cancel"))
	return PanelStyle.Render(b.String())
}
