package tui

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"go.withmatt.com/triage/internal/config"
)

type signInState struct {
	form       *huh.Form
	confirm    *bool
	inProgress bool
	status     string
}

func newSignInState(theme config.Theme) signInState {
	confirm := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("triage").
				Description("Prioritized summaries of your Gmail inbox.\n"+
					"Access is read-only; nothing is sent or modified."),
			huh.NewConfirm().
				Title("Sign in with Google?").
				Affirmative("Sign in").
				Negative("Quit").
				Value(&confirm),
		),
	).WithShowHelp(false).WithWidth(56).WithTheme(signInFormTheme(theme))
	return signInState{form: form, confirm: &confirm}
}

func (m *Model) renderSignInView() string {
	var body string
	if m.signIn.inProgress {
		body = m.ui.spinner.View() + " " + m.signIn.status
	} else if m.signIn.form != nil {
		body = m.signIn.form.View()
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Detail.BorderSelected)).
		Padding(1, 2).
		Render(strings.TrimRight(body, "\n"))
	if m.ui.width > 0 && m.ui.height > 1 {
		box = lipgloss.Place(m.ui.width, m.ui.height-1, lipgloss.Center, lipgloss.Center, box)
	}

	bar := statusBar{theme: m.theme}
	footer := bar.render(m.ui.width,
		[]statusSegment{bar.seg(segmentMode, "SIGN IN")},
		[]statusSegment{bar.dim("ctrl+c quit")},
	)
	return renderFixedLayout(m.ui.height, box, footer)
}

func signInFormTheme(theme config.Theme) *huh.Theme {
	t := huh.ThemeBase()
	accent := lipgloss.Color(theme.Detail.BorderSelected)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(accent).Bold(true).MarginBottom(1)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color(theme.Status.ModeFg)).
		Background(lipgloss.Color(theme.Status.ModeBg))
	return t
}
