package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var alertCmd tea.Cmd
	m, alertCmd = m.updateAlerts(msg)

	var next tea.Model
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case spinner.TickMsg:
		next, cmd = m.updateSpinner(msg)
	case tea.KeyMsg:
		next, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		next, cmd = m.updateMouse(msg)
	case tea.FocusMsg:
		m.ui.focused = true
		next = m
	case tea.BlurMsg:
		m.ui.focused = false
		next = m
	case refreshedMsg:
		next, cmd = m.handleRefreshed(msg)
	case dispatchedMsg:
		next, cmd = m.handleDispatched(msg)
	case profileLoadedMsg:
		next, cmd = m.handleProfileLoaded(msg)
	case signedInMsg:
		next, cmd = m.handleSignedIn(msg)
	case autoRefreshMsg:
		next, cmd = m.handleAutoRefresh(msg)
	case tea.WindowSizeMsg:
		next, cmd = m.handleWindowSize(msg)
	default:
		next, cmd = m.updateSignInForm(msg)
	}
	return next, tea.Batch(cmd, alertCmd)
}
