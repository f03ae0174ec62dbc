package tui

import (
	"errors"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"go.withmatt.com/triage/internal/ingest"
	"go.withmatt.com/triage/internal/oauth"
	"go.withmatt.com/triage/internal/session"
	"go.withmatt.com/triage/internal/triage"
)

// priorityCycle is the order the priority filter steps through.
var priorityCycle = append([]triage.Priority{triage.PriorityAll}, triage.Priorities...)

func (m Model) updateSpinner(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.ui.spinner, cmd = m.ui.spinner.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Close modals on any keypress
	if m.ui.showHelp {
		m.ui.showHelp = false
		return m, nil
	}
	if m.ui.showError {
		m.ui.showError = false
		m.ui.err = nil
		return m, nil
	}

	switch {
	case m.currentView == viewSignIn:
		return m.handleSignInKey(msg)
	case m.detail.open:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ui.focused || m.currentView != viewList {
		return m, nil
	}
	if m.detail.open {
		var cmd tea.Cmd
		m.detail.viewport, cmd = m.detail.viewport.Update(msg)
		return m, cmd
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		clicked := (msg.Y - listHeaderHeight) / m.listCardHeight()
		start, end := m.getVisibleRange()
		if idx := start + clicked; idx >= start && idx < end {
			m.inbox.cursor = idx
			return m.openDetail()
		}
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	switch {
	case key.Matches(msg, km.list.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.list.Help):
		m.ui.showHelp = true
	case key.Matches(msg, km.list.Up):
		m.moveCursor(-1)
	case key.Matches(msg, km.list.Down):
		m.moveCursor(1)
	case key.Matches(msg, km.list.PageUp):
		m.moveCursor(-max(m.visibleCardCount(), 1))
	case key.Matches(msg, km.list.PageDown):
		m.moveCursor(max(m.visibleCardCount(), 1))
	case key.Matches(msg, km.list.Open):
		return m.openDetail()
	case key.Matches(msg, km.list.Refresh):
		return m.startRefresh()
	case key.Matches(msg, km.list.CycleAge):
		c := m.session.State().Criteria
		c.MaxAgeDays = triage.NextAgePreset(c.MaxAgeDays)
		return m, m.dispatchCmd(session.Command{Kind: session.CmdSetCriteria, Criteria: c})
	case key.Matches(msg, km.list.CyclePriority):
		c := m.session.State().Criteria
		c.Priority = nextInCycle(priorityCycle, c.Priority)
		return m, m.dispatchCmd(session.Command{Kind: session.CmdSetCriteria, Criteria: c})
	case key.Matches(msg, km.list.CycleVisibility):
		c := m.session.State().Criteria
		c.Visibility = nextInCycle(triage.Visibilities, c.Visibility)
		return m, m.dispatchCmd(session.Command{Kind: session.CmdSetCriteria, Criteria: c})
	case key.Matches(msg, km.list.ResetFilter):
		return m, m.dispatchCmd(session.Command{
			Kind:     session.CmdSetCriteria,
			Criteria: triage.DefaultCriteria(),
		})
	case key.Matches(msg, km.list.ToggleLayout):
		return m, m.dispatchCmd(session.Command{Kind: session.CmdToggleLayout})
	case key.Matches(msg, km.list.ToggleTheme):
		return m, m.dispatchCmd(session.Command{Kind: session.CmdToggleTheme})
	case key.Matches(msg, km.list.SignOut):
		return m, m.dispatchCmd(session.Command{Kind: session.CmdSignOut})
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keyMap()
	switch {
	case key.Matches(msg, km.detail.Quit):
		return m, tea.Quit
	case key.Matches(msg, km.detail.Help):
		m.ui.showHelp = true
		return m, nil
	case key.Matches(msg, km.detail.Back):
		return m.closeDetail()
	case key.Matches(msg, km.detail.ToggleTheme):
		return m, m.dispatchCmd(session.Command{Kind: session.CmdToggleTheme})
	case key.Matches(msg, km.detail.Up):
		if m.inbox.cursor > 0 {
			m.moveCursor(-1)
			return m.openDetail()
		}
		return m, nil
	case key.Matches(msg, km.detail.Down):
		if m.inbox.cursor < len(m.inbox.records)-1 {
			m.moveCursor(1)
			return m.openDetail()
		}
		return m, nil
	case key.Matches(msg, km.detail.ScrollUp):
		m.detail.viewport.PageUp()
		return m, nil
	case key.Matches(msg, km.detail.ScrollDown):
		m.detail.viewport.PageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap().signIn.Quit) {
		return m, tea.Quit
	}
	if m.signIn.inProgress {
		return m, nil
	}
	return m.updateSignInForm(msg)
}

func (m Model) updateSignInForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentView != viewSignIn || m.signIn.form == nil || m.signIn.inProgress {
		return m, nil
	}

	form, cmd := m.signIn.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.signIn.form = f
	}

	switch m.signIn.form.State {
	case huh.StateCompleted:
		if !*m.signIn.confirm {
			return m, tea.Quit
		}
		m.signIn.inProgress = true
		m.signIn.status = "Waiting for Google sign-in in your browser..."
		return m, tea.Batch(cmd, m.signInCmd(), m.ui.spinner.Tick)
	case huh.StateAborted:
		return m, tea.Quit
	default:
		return m, cmd
	}
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	r, ok := m.currentRecord()
	if !ok {
		return m, nil
	}
	if _, err := m.session.Dispatch(m.ctx, session.Command{Kind: session.CmdSelect, ID: r.ID}); err != nil {
		m.ui.err = err
		m.ui.showError = true
		return m, nil
	}
	m.detail.open = true
	m.detail.recordID = r.ID
	m.layoutDetail()
	m.detail.viewport.SetContent(m.renderDetailBody(r))
	m.detail.viewport.GotoTop()
	return m, m.setWindowTitleCmd()
}

func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	if _, err := m.session.Dispatch(m.ctx, session.Command{Kind: session.CmdSelect}); err != nil {
		m.logf("clear selection: %v", err)
	}
	m.resetDetail()
	return m, m.setWindowTitleCmd()
}

func (m Model) startRefresh() (tea.Model, tea.Cmd) {
	if m.inbox.refreshing || m.currentView != viewList {
		return m, nil
	}
	m.inbox.refreshing = true
	return m, tea.Batch(m.refreshCmd(), m.ui.spinner.Tick)
}

func (m Model) handleRefreshed(msg refreshedMsg) (tea.Model, tea.Cmd) {
	m.inbox.refreshing = false
	m.inbox.loading = false

	var cmd tea.Cmd
	switch {
	case msg.err == nil:
	case errors.Is(msg.err, ingest.ErrRefreshInFlight):
	case errors.Is(msg.err, ingest.ErrFetch):
		m.logf("refresh failed: %v", msg.err)
		cmd = m.fetchFailedToastCmd()
	default:
		m.ui.err = msg.err
		m.ui.showError = true
	}

	m.reloadView()
	if m.detail.open {
		if r, ok := m.session.Selected(); ok {
			m.detail.viewport.SetContent(m.renderDetailBody(r))
		} else {
			m.resetDetail()
		}
	}
	return m, tea.Batch(cmd, m.setWindowTitleCmd())
}

func (m Model) handleDispatched(msg dispatchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.ui.err = msg.err
		m.ui.showError = true
		return m, nil
	}

	switch msg.kind {
	case session.CmdToggleTheme:
		m.applyTheme()
		if m.detail.open {
			if r, ok := m.session.Selected(); ok {
				m.detail.viewport.SetContent(m.renderDetailBody(r))
			}
		}
		return m, m.infoToastCmd(string(msg.state.Mode) + " theme")
	case session.CmdToggleLayout:
		m.inbox.scrollOffset = 0
		m.reloadView()
		return m, nil
	case session.CmdSignOut:
		m.resetDetail()
		m.profile = oauth.Profile{}
		m.inbox = inboxState{loading: true}
		m.currentView = viewSignIn
		m.signIn = newSignInState(m.theme)
		return m, tea.Batch(m.signIn.form.Init(), m.setWindowTitleCmd())
	default:
		m.inbox.cursor = 0
		m.inbox.scrollOffset = 0
		m.reloadView()
		return m, m.setWindowTitleCmd()
	}
}

func (m Model) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logf("profile: %v", msg.err)
		return m, nil
	}
	m.profile = msg.profile
	return m, nil
}

func (m Model) handleSignedIn(msg signedInMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.ui.err = msg.err
		m.ui.showError = true
		m.signIn = newSignInState(m.theme)
		return m, m.signIn.form.Init()
	}
	if m.onSignIn != nil {
		m.onSignIn(msg.profile)
	}
	m.profile = msg.profile
	m.signIn = signInState{}
	m.currentView = viewList
	m.inbox = inboxState{loading: true, refreshing: true}
	return m, tea.Batch(
		m.refreshCmd(),
		m.autoRefreshCmd(),
		m.setWindowTitleCmd(),
		m.infoToastCmd("Signed in as "+msg.profile.Email),
	)
}

func (m Model) handleAutoRefresh(_ autoRefreshMsg) (tea.Model, tea.Cmd) {
	if m.uiConfig.RefreshIntervalSeconds <= 0 || m.currentView != viewList {
		return m, nil
	}
	if m.inbox.refreshing {
		return m, m.autoRefreshCmd()
	}
	m.inbox.refreshing = true
	return m, tea.Batch(m.refreshCmd(), m.autoRefreshCmd())
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	oldWidth := m.ui.width
	m.ui.width = msg.Width
	m.ui.height = msg.Height
	if msg.Width != oldWidth && msg.Width > 0 {
		m.ui.alert = newAlertModel(m.theme, msg.Width)
	}

	if m.detail.open {
		m.layoutDetail()
		if r, ok := m.session.Selected(); ok {
			m.detail.viewport.SetContent(m.renderDetailBody(r))
		}
	}
	m.ensureCursorVisible()

	if m.currentView == viewSignIn && m.signIn.form != nil {
		form, cmd := m.signIn.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.signIn.form = f
		}
		return m, cmd
	}
	return m, nil
}

// applyTheme switches every themed component to the session's mode.
func (m *Model) applyTheme() {
	mode := m.session.State().Mode
	m.theme = m.themes.For(mode)
	m.ui.help = newHelpModel(m.theme)
	m.ui.alert = newAlertModel(m.theme, m.ui.width)
	width := m.renderers.glamourWidth
	if r, err := newGlamourRenderer(m.theme, mode, width); err == nil {
		m.renderers.glamourRenderer = r
	} else {
		m.logf("glamour renderer: %v", err)
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.inbox.records) == 0 {
		m.inbox.cursor = 0
		return
	}
	m.inbox.cursor = min(max(m.inbox.cursor+delta, 0), len(m.inbox.records)-1)
	m.ensureCursorVisible()
}

func nextInCycle[T comparable](cycle []T, current T) T {
	i := slices.Index(cycle, current)
	return cycle[(i+1)%len(cycle)]
}
