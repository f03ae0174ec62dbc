package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"go.withmatt.com/triage/internal/config"
)

const (
	toastDurationSeconds = 6
	fetchFailedToast     = "Failed to load emails. Please try again."

	alertErrorKey = "triage-error"
)

func newAlertModel(theme config.Theme, width int) bubbleup.AlertModel {
	model := *bubbleup.NewAlertModel(width, true, toastDurationSeconds)

	color := strings.TrimSpace(theme.Detail.BorderSelected)
	if color == "" {
		color = theme.Status.Fg
	}
	model.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       bubbleup.InfoKey,
		ForeColor: color,
		Prefix:    bubbleup.InfoNerdSymbol,
	})

	errColor := strings.TrimSpace(theme.Priority.High)
	if errColor == "" {
		errColor = color
	}
	model.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       alertErrorKey,
		ForeColor: errColor,
		Prefix:    "✗ ",
	})

	return model
}

func (m Model) updateAlerts(msg tea.Msg) (Model, tea.Cmd) {
	outAlert, alertCmd := m.ui.alert.Update(msg)
	m.ui.alert = outAlert.(bubbleup.AlertModel)
	return m, alertCmd
}

func (m *Model) infoToastCmd(message string) tea.Cmd {
	return m.ui.alert.NewAlertCmd(bubbleup.InfoKey, message)
}

func (m *Model) fetchFailedToastCmd() tea.Cmd {
	return m.ui.alert.NewAlertCmd(alertErrorKey, fetchFailedToast)
}
