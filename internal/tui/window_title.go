package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	windowTitleMaxRunes = 80
	windowTitleSuffix   = " - triage"
)

func (m *Model) setWindowTitleCmd() tea.Cmd {
	return tea.SetWindowTitle(m.windowTitle())
}

func (m *Model) windowTitle() string {
	switch {
	case m.currentView == viewSignIn:
		return formatWindowTitle("Sign in")
	case m.detail.open:
		return formatWindowTitle(m.detailTitle())
	case m.inbox.stats.Unread > 0:
		return formatWindowTitle(fmt.Sprintf("Inbox (%d unread)", m.inbox.stats.Unread))
	default:
		return formatWindowTitle("")
	}
}

func (m *Model) detailTitle() string {
	r, ok := m.session.Selected()
	if !ok {
		return "Message"
	}
	if subject := strings.TrimSpace(stripZeroWidth(r.Subject)); subject != "" {
		return subject
	}
	if from := strings.TrimSpace(stripZeroWidth(r.From)); from != "" {
		return "Message from " + from
	}
	return "Message"
}

func formatWindowTitle(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "triage"
	}
	maxBody := windowTitleMaxRunes - len([]rune(windowTitleSuffix))
	return truncateTitle(body, maxBody) + windowTitleSuffix
}

func truncateTitle(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return strings.Repeat(".", maxRunes)
	}
	return string(runes[:maxRunes-3]) + "..."
}
