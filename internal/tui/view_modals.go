package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// overlayModal centers a modal dialog on top of the base view.
func (m *Model) overlayModal(baseView string, modal string) string {
	dialogBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Detail.BorderNormal)).
		Padding(1, 2)

	return overlay.Composite(
		dialogBoxStyle.Render(modal),
		baseView,
		overlay.Center,
		overlay.Center,
		0,
		0,
	)
}

func (m *Model) renderHelpModal() string {
	var b strings.Builder

	modalWidth := max(40, min(80, m.ui.width-10))

	titleStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center).
		Bold(true)
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpModel := m.ui.help
	helpModel.ShowAll = true
	helpModel.Width = max(10, modalWidth-4)
	b.WriteString(helpModel.View(m.keyMap()))

	b.WriteString("\n\n")
	footerStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(m.theme.Modal.FooterFg))
	b.WriteString(footerStyle.Render("Press any key to close"))

	return b.String()
}

func (m *Model) renderErrorModal() string {
	var b strings.Builder

	modalWidth := max(30, min(60, m.ui.width-10))

	titleStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Priority.High))
	b.WriteString(titleStyle.Render("Error"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(modalWidth).Render(m.ui.err.Error()))
	b.WriteString("\n\n")

	footerStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(m.theme.Modal.FooterFg))
	b.WriteString(footerStyle.Render("Press any key to dismiss"))

	return b.String()
}
