package tests

import (
	"testing"

	"bella-vista/admin-console/internal/auth"
	"bella-vista/admin-console/internal/controller"
	"bella-vista/admin-console/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestUI_LoginThenDashboard(t *testing.T) {
	gate := auth.NewGate(adminCreds)
	ctrl := controller.New(controller.NewStore(), localSet(t), nil, nil)

	var m tea.Model = ui.New(gate, ctrl)
	m.Init()
	assert.Contains(t, m.View(), "Admin Login")

	m = typeText(t, m, "admin@restaurant.com")
	m, _ = press(m, tea.KeyTab)
	m = typeText(t, m, "wrong")
	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Invalid email or password")
	assert.False(t, gate.IsAuthenticated())
}

func TestUI_SuccessfulLoginLoadsData(t *testing.T) {
	gate := auth.NewGate(adminCreds)
	ctrl := controller.New(controller.NewStore(), localSet(t), nil, nil)

	var m tea.Model = ui.New(gate, ctrl)
	m.Init()
	m = typeText(t, m, "admin@restaurant.com")
	m, _ = press(m, tea.KeyTab)
	m = typeText(t, m, "admin123")
	m, cmd := press(m, tea.KeyEnter)

	require.NotNil(t, cmd)
	assert.True(t, gate.IsAuthenticated())

	m, _ = m.Update(cmd())
	view := m.View()
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "1810.00")
	assert.Contains(t, view, "John Doe")

	m, _ = press(m, tea.KeyTab)
	assert.Contains(t, m.View(), "Truffle Risotto")
}

func TestUI_IgnoresKeysWhileBusy(t *testing.T) {
	gate := auth.NewGate(adminCreds)
	ctrl := controller.New(controller.NewStore(), localSet(t), nil, nil)

	var m tea.Model = ui.New(gate, ctrl)
	m.Init()
	m = typeText(t, m, "admin@restaurant.com")
	m, _ = press(m, tea.KeyTab)
	m = typeText(t, m, "admin123")
	m, load := press(m, tea.KeyEnter)
	require.NotNil(t, load)

	assert.True(t, m.(ui.Model).Busy())
	assert.Contains(t, m.View(), "Loading...")

	m, cmd := press(m, tea.KeyTab)
	assert.Nil(t, cmd)
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "Truffle Risotto")

	m, _ = m.Update(load())
	assert.False(t, m.(ui.Model).Busy())

	// Reservations screen: confirming starts a write and locks input until
	// the write reports back.
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	require.Contains(t, m.View(), "filter: all")
	m, _ = press(m, tea.KeyDown)
	m, write := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, write)
	assert.Contains(t, m.View(), "Saving...")

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)

	m, _ = m.Update(write())
	assert.False(t, m.(ui.Model).Busy())
	assert.Contains(t, m.View(), "Reservation confirmed")
	assert.Equal(t, 0, ctrl.Stats().PendingReservations)
}
