package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bella-vista/admin-console/internal/auth"
	"bella-vista/admin-console/internal/controller"
	"bella-vista/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenMenu
	ScreenReservations
	ScreenGallery
	ScreenTestimonials
)

var tabs = []struct {
	screen Screen
	title  string
}{
	{ScreenDashboard, "Dashboard"},
	{ScreenMenu, "Menu"},
	{ScreenReservations, "Reservations"},
	{ScreenGallery, "Gallery"},
	{ScreenTestimonials, "Testimonials"},
}

var reservationFilters = []string{
	controller.StatusFilterAll,
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
	string(domain.StatusCancelled),
}

const requestTimeout = 10 * time.Second

const (
	pendingLoad  = "Loading..."
	pendingWrite = "Saving..."
)

type loadedMsg struct{ err error }

type writeDoneMsg struct {
	info string
	err  error
}

// Model is the root Bubble Tea model of the admin console.
type Model struct {
	gate *auth.Gate
	ctrl *controller.Controller

	screen Screen
	cursor int
	filter int
	form   *FormModel

	login      []textinput.Model
	loginFocus int

	keys     KeyMap
	formKeys FormKeyMap

	width  int
	height int
	err    string
	info   string

	// pending is non-empty while a load or write command is in flight.
	pending string
}

func New(gate *auth.Gate, ctrl *controller.Controller) Model {
	email := textinput.New()
	email.Placeholder = "admin@restaurant.com"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return Model{
		gate:     gate,
		ctrl:     ctrl,
		screen:   ScreenLogin,
		login:    []textinput.Model{email, password},
		keys:     DefaultKeyMap(),
		formKeys: DefaultFormKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	m.gate.Init()
	return textinput.Blink
}

func loadCmd(ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func writeCmd(info string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			return writeDoneMsg{err: err}
		}
		return writeDoneMsg{info: info}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.pending = ""
		m.err = ""
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		m.clampCursor()
		return m, nil

	case writeDoneMsg:
		m.pending = ""
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.info = msg.info
		m.form = nil
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == ScreenLogin {
			return m.updateLogin(msg)
		}
		if m.Busy() {
			if m.form == nil && key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		return m, tea.Quit
	case key.Matches(msg, m.formKeys.Next):
		m.focusLogin(m.loginFocus + 1)
		return m, nil
	case key.Matches(msg, m.formKeys.Prev):
		m.focusLogin(m.loginFocus - 1)
		return m, nil
	case key.Matches(msg, m.formKeys.Submit):
		ok, err := m.gate.Login(m.login[0].Value(), m.login[1].Value())
		switch {
		case err != nil:
			m.err = err.Error()
		case !ok:
			m.err = "Invalid email or password"
			m.login[1].SetValue("")
		default:
			m.err = ""
			m.info = "Signed in as " + m.gate.CurrentUserIdentity()
			m.login[1].SetValue("")
			m.screen = ScreenDashboard
			m.pending = pendingLoad
			return m, loadCmd(m.ctrl)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.login[m.loginFocus], cmd = m.login[m.loginFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusLogin(i int) {
	m.login[m.loginFocus].Blur()
	m.loginFocus = (i + len(m.login)) % len(m.login)
	m.login[m.loginFocus].Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.cancelEdit()
		m.form = nil
		m.err = ""
		return m, nil
	case key.Matches(msg, m.formKeys.Next):
		m.form.move(1)
		return m, nil
	case key.Matches(msg, m.formKeys.Prev):
		m.form.move(-1)
		return m, nil
	case key.Matches(msg, m.formKeys.Submit):
		cmd := m.submitForm()
		if cmd != nil {
			m.pending = pendingWrite
		}
		return m, cmd
	}
	return m, m.form.updateInput(msg)
}

func (m Model) submitForm() tea.Cmd {
	form := m.form
	ctrl := m.ctrl
	info := "Saved"
	switch form.panel {
	case controller.PanelMenu:
		return writeCmd(info, func(ctx context.Context) error {
			_, err := ctrl.Menu.Submit(ctx, form.MenuForm())
			return err
		})
	case controller.PanelReservations:
		return writeCmd(info, func(ctx context.Context) error {
			_, err := ctrl.Reservations.Submit(ctx, form.ReservationForm())
			return err
		})
	case controller.PanelGallery:
		return writeCmd(info, func(ctx context.Context) error {
			_, err := ctrl.Gallery.Submit(ctx, form.GalleryForm())
			return err
		})
	case controller.PanelTestimonials:
		return writeCmd(info, func(ctx context.Context) error {
			_, err := ctrl.Testimonials.Submit(ctx, form.TestimonialForm())
			return err
		})
	}
	return nil
}

func (m *Model) cancelEdit() {
	switch m.screen {
	case ScreenMenu:
		m.ctrl.Menu.CancelEdit()
	case ScreenReservations:
		m.ctrl.Reservations.CancelEdit()
	case ScreenGallery:
		m.ctrl.Gallery.CancelEdit()
	case ScreenTestimonials:
		m.ctrl.Testimonials.CancelEdit()
	}
}

func (m Model) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logout):
		m.gate.Logout()
		m.screen = ScreenLogin
		m.info = "Signed out"
		m.err = ""
		return m, nil
	case key.Matches(msg, m.keys.NextPanel):
		m.switchTab(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevPanel):
		m.switchTab(-1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.pending = pendingLoad
		return m, loadCmd(m.ctrl)
	case key.Matches(msg, m.keys.Filter) && m.screen == ScreenReservations:
		m.filter = (m.filter + 1) % len(reservationFilters)
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.cancelEdit()
		m.openForm(false)
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		m.openForm(true)
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if id := m.selectedID(); id != "" {
			m.pending = pendingWrite
			return m, m.deleteSelected(id)
		}
	case key.Matches(msg, m.keys.Confirm) && m.screen == ScreenReservations:
		if id := m.selectedID(); id != "" {
			ctrl := m.ctrl
			m.pending = pendingWrite
			return m, writeCmd("Reservation confirmed", func(ctx context.Context) error {
				_, err := ctrl.Reservations.Confirm(ctx, id)
				return err
			})
		}
	case key.Matches(msg, m.keys.Cancel) && m.screen == ScreenReservations:
		if id := m.selectedID(); id != "" {
			ctrl := m.ctrl
			m.pending = pendingWrite
			return m, writeCmd("Reservation cancelled", func(ctx context.Context) error {
				_, err := ctrl.Reservations.Cancel(ctx, id)
				return err
			})
		}
	}
	return m, nil
}

// Busy reports whether a load or write is still running. Keys other than
// quit are ignored until it finishes.
func (m Model) Busy() bool {
	return m.pending != "" || m.ctrl.Store().Loading()
}

func (m *Model) switchTab(delta int) {
	current := 0
	for i, t := range tabs {
		if t.screen == m.screen {
			current = i
		}
	}
	next := (current + delta + len(tabs)) % len(tabs)
	m.screen = tabs[next].screen
	m.cursor = 0
	m.info = ""
}

func (m *Model) openForm(edit bool) {
	id := ""
	if edit {
		id = m.selectedID()
		if id == "" {
			return
		}
	}

	switch m.screen {
	case ScreenMenu:
		if !edit {
			m.form = newMenuForm(nil)
		} else if item, ok := m.ctrl.Menu.StartEdit(id); ok {
			m.form = newMenuForm(&item)
		}
	case ScreenReservations:
		if !edit {
			m.form = newReservationForm(nil)
		} else if r, ok := m.ctrl.Reservations.StartEdit(id); ok {
			m.form = newReservationForm(&r)
		}
	case ScreenGallery:
		if !edit {
			m.form = newGalleryForm(nil)
		} else if g, ok := m.ctrl.Gallery.StartEdit(id); ok {
			m.form = newGalleryForm(&g)
		}
	case ScreenTestimonials:
		if !edit {
			m.form = newTestimonialForm(nil)
		} else if t, ok := m.ctrl.Testimonials.StartEdit(id); ok {
			m.form = newTestimonialForm(&t)
		}
	}
}

func (m Model) deleteSelected(id string) tea.Cmd {
	ctrl := m.ctrl
	screen := m.screen
	return writeCmd("Deleted", func(ctx context.Context) error {
		switch screen {
		case ScreenMenu:
			return ctrl.Menu.Delete(ctx, id)
		case ScreenReservations:
			return ctrl.Reservations.Delete(ctx, id)
		case ScreenGallery:
			return ctrl.Gallery.Delete(ctx, id)
		case ScreenTestimonials:
			return ctrl.Testimonials.Delete(ctx, id)
		}
		return nil
	})
}

func (m Model) visibleReservations() []domain.Reservation {
	return m.ctrl.ReservationsByStatus(reservationFilters[m.filter])
}

func (m Model) rowCount() int {
	switch m.screen {
	case ScreenMenu:
		return len(m.ctrl.Menu.Items())
	case ScreenReservations:
		return len(m.visibleReservations())
	case ScreenGallery:
		return len(m.ctrl.Gallery.Items())
	case ScreenTestimonials:
		return len(m.ctrl.Testimonials.Items())
	}
	return 0
}

func (m Model) selectedID() string {
	switch m.screen {
	case ScreenMenu:
		return idAt(m.ctrl.Menu.Items(), m.cursor)
	case ScreenReservations:
		return idAt(m.visibleReservations(), m.cursor)
	case ScreenGallery:
		return idAt(m.ctrl.Gallery.Items(), m.cursor)
	case ScreenTestimonials:
		return idAt(m.ctrl.Testimonials.Items(), m.cursor)
	}
	return ""
}

func idAt[T domain.Identifiable](items []T, i int) string {
	if i < 0 || i >= len(items) {
		return ""
	}
	return items[i].GetID()
}

func (m *Model) clampCursor() {
	if n := m.rowCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.screen == ScreenLogin {
		return m.loginView()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Bella Vista · Admin") + "  " + MutedStyle.Render(m.gate.CurrentUserIdentity()))
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
	} else {
		b.WriteString(m.screenView())
	}
	b.WriteString("\n")

	if m.pending != "" {
		b.WriteString(MutedStyle.Render(m.pending) + "\n")
	} else if m.ctrl.Store().Loading() {
		b.WriteString(MutedStyle.Render(pendingLoad) + "\n")
	}
	if m.err != "" {
		b.WriteString(ErrorStyle.Render(m.err) + "\n")
	} else if m.info != "" {
		b.WriteString(InfoStyle.Render(m.info) + "\n")
	}
	b.WriteString(FooterStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Bella Vista · Admin Login"))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Email") + "\n" + m.login[0].View() + "\n\n")
	b.WriteString(LabelStyle.Render("Password") + "\n" + m.login[1].View() + "\n\n")
	if m.err != "" {
		b.WriteString(ErrorStyle.Render(m.err) + "\n")
	} else if m.info != "" {
		b.WriteString(InfoStyle.Render(m.info) + "\n")
	}
	b.WriteString(MutedStyle.Render("tab switch field · enter sign in · esc quit"))
	return PanelStyle.Render(b.String())
}

func (m Model) tabsView() string {
	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.screen == m.screen {
			rendered = append(rendered, ActiveTabStyle.Render(t.title))
		} else {
			rendered = append(rendered, TabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) screenView() string {
	switch m.screen {
	case ScreenDashboard:
		return m.dashboardView()
	case ScreenMenu:
		return m.listView(controller.PanelMenu, m.ctrl.Menu.Err(), menuRows(m.ctrl.Menu.Items()))
	case ScreenReservations:
		header := MutedStyle.Render("filter: "+reservationFilters[m.filter]) + "\n"
		return header + m.listView(controller.PanelReservations, m.ctrl.Reservations.Err(), reservationRows(m.visibleReservations()))
	case ScreenGallery:
		return m.listView(controller.PanelGallery, m.ctrl.Gallery.Err(), galleryRows(m.ctrl.Gallery.Items()))
	case ScreenTestimonials:
		return m.listView(controller.PanelTestimonials, m.ctrl.Testimonials.Err(), testimonialRows(m.ctrl.Testimonials.Items()))
	}
	return ""
}

func (m Model) dashboardView() string {
	stats := m.ctrl.Stats()
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		StatStyle.Render(fmt.Sprintf("Reservations\n%d", stats.TotalReservations)),
		StatStyle.Render(fmt.Sprintf("Pending\n%d", stats.PendingReservations)),
		StatStyle.Render(fmt.Sprintf("Menu items\n%d", stats.MenuItems)),
		StatStyle.Render(fmt.Sprintf("Gallery\n%d", stats.GalleryImages)),
		StatStyle.Render(fmt.Sprintf("Testimonials\n%d", stats.Testimonials)),
		StatStyle.Render("Revenue (placeholder)\n$"+stats.PlaceholderRevenue.StringFixed(2)),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n" + LabelStyle.Render("Recent reservations") + "\n")
	for _, row := range reservationRows(m.ctrl.RecentReservations(controller.DashboardRecent)) {
		b.WriteString("  " + row + "\n")
	}

	events := m.ctrl.Store().Activity()
	if len(events) > 0 {
		b.WriteString("\n" + LabelStyle.Render("Recent activity") + "\n")
		for _, e := range events {
			line := fmt.Sprintf("  %s  %-12s %-8s %s", e.Timestamp.Local().Format("Jan 02 15:04"), e.Resource, e.Type, e.ID)
			if e.Status != "" {
				line += " → " + e.Status
			}
			b.WriteString(MutedStyle.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m Model) listView(panel controller.PanelName, panelErr error, rows []string) string {
	var b strings.Builder
	if panelErr != nil {
		b.WriteString(ErrorStyle.Render(panelErr.Error()) + "\n")
	}
	if len(rows) == 0 {
		b.WriteString(MutedStyle.Render("No " + string(panel) + " yet. Press a to add one."))
		return b.String()
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(SelectedRowStyle.Render("> "+row) + "\n")
		} else {
			b.WriteString(NormalRowStyle.Render("  "+row) + "\n")
		}
	}
	return b.String()
}

func menuRows(items []domain.MenuItem) []string {
	rows := make([]string, 0, len(items))
	for _, item := range items {
		available := "available"
		if !item.Available {
			available = "hidden"
		}
		rows = append(rows, fmt.Sprintf("%-28s %-10s $%7s  %s", truncate(item.Name, 28), item.Category, item.Price.StringFixed(2), available))
	}
	return rows
}

func reservationRows(items []domain.Reservation) []string {
	rows := make([]string, 0, len(items))
	for _, r := range items {
		status := statusStyle(string(r.Status)).Render(string(r.Status))
		rows = append(rows, fmt.Sprintf("%-20s %s %s  %2d guests  %s", truncate(r.Name, 20), r.Date, r.Time, r.Guests, status))
	}
	return rows
}

func galleryRows(items []domain.GalleryItem) []string {
	rows := make([]string, 0, len(items))
	for _, g := range items {
		rows = append(rows, fmt.Sprintf("%-28s %s", truncate(g.Title, 28), truncate(g.URL, 60)))
	}
	return rows
}

func testimonialRows(items []domain.Testimonial) []string {
	rows := make([]string, 0, len(items))
	for _, t := range items {
		rating := clamp(t.Rating, 0, 5)
		stars := strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		rows = append(rows, fmt.Sprintf("%-20s %s %s  %s", truncate(t.Name, 20), stars, t.Date, truncate(t.Comment, 50)))
	}
	return rows
}

func (m Model) helpLine() string {
	bindings := []key.Binding{m.keys.NextPanel, m.keys.Up, m.keys.Down}
	if m.form != nil {
		bindings = []key.Binding{m.formKeys.Next, m.formKeys.Submit, m.formKeys.Cancel}
	} else if m.screen != ScreenDashboard {
		bindings = append(bindings, m.keys.Add, m.keys.Edit, m.keys.Delete)
		if m.screen == ScreenReservations {
			bindings = append(bindings, m.keys.Confirm, m.keys.Cancel, m.keys.Filter)
		}
	}
	if m.form == nil {
		bindings = append(bindings, m.keys.Refresh, m.keys.Logout, m.keys.Quit)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
