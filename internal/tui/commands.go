package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go.withmatt.com/triage/internal/oauth"
	"go.withmatt.com/triage/internal/session"
)

type refreshedMsg struct {
	err error
}

type dispatchedMsg struct {
	kind  session.CommandKind
	state session.State
	err   error
}

type profileLoadedMsg struct {
	profile oauth.Profile
	err     error
}

type signedInMsg struct {
	profile oauth.Profile
	err     error
}

type autoRefreshMsg struct{}

// refreshCmd runs one ingestion cycle off the UI goroutine.
func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		_, err := m.session.Dispatch(m.ctx, session.Command{Kind: session.CmdRefresh})
		m.logf("refresh done in %s err=%v", time.Since(start), err)
		return refreshedMsg{err: err}
	}
}

// dispatchCmd runs a session command that may touch the preference store.
func (m *Model) dispatchCmd(cmd session.Command) tea.Cmd {
	return func() tea.Msg {
		state, err := m.session.Dispatch(m.ctx, cmd)
		return dispatchedMsg{kind: cmd.Kind, state: state, err: err}
	}
}

func (m *Model) profileCmd() tea.Cmd {
	if m.auth == nil {
		return nil
	}
	return func() tea.Msg {
		profile, err := m.auth.Profile(m.ctx)
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (m *Model) signInCmd() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.auth.SignIn(m.ctx)
		return signedInMsg{profile: profile, err: err}
	}
}

func (m *Model) autoRefreshCmd() tea.Cmd {
	if m.uiConfig.RefreshIntervalSeconds <= 0 {
		return nil
	}
	interval := time.Duration(m.uiConfig.RefreshIntervalSeconds) * time.Second
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshMsg{}
	})
}
