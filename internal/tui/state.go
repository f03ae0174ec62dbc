package tui

import (
	md "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.dalton.dog/bubbleup"

	"go.withmatt.com/triage/internal/triage"
)

type uiState struct {
	width     int
	height    int
	focused   bool
	spinner   spinner.Model
	help      help.Model
	alert     bubbleup.AlertModel
	showHelp  bool
	showError bool
	err       error
}

type inboxState struct {
	records      []triage.Record
	stats        triage.Stats
	cursor       int
	scrollOffset int
	// loading is set until the first refresh completes.
	loading    bool
	refreshing bool
}

type detailState struct {
	open     bool
	recordID string
	viewport viewport.Model
}

type renderersState struct {
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
	htmlConverter   *md.Converter
}

func newUIState() uiState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return uiState{spinner: s, focused: true}
}

func newDetailState() detailState {
	return detailState{viewport: viewport.New(0, 0)}
}

func (m *Model) resetDetail() {
	m.detail.open = false
	m.detail.recordID = ""
	m.detail.viewport.SetContent("")
	m.detail.viewport.GotoTop()
}

func (m *Model) currentRecord() (triage.Record, bool) {
	if m.inbox.cursor < 0 || m.inbox.cursor >= len(m.inbox.records) {
		return triage.Record{}, false
	}
	return m.inbox.records[m.inbox.cursor], true
}

// reloadView recomputes the visible records from the session, keeping the
// cursor on the same email when it is still visible.
func (m *Model) reloadView() {
	var keepID string
	if r, ok := m.currentRecord(); ok {
		keepID = r.ID
	}

	v := m.session.View(m.now())
	m.inbox.records = v.Records
	m.inbox.stats = v.Stats

	m.inbox.cursor = min(m.inbox.cursor, max(len(v.Records)-1, 0))
	if keepID != "" {
		for i, r := range v.Records {
			if r.ID == keepID {
				m.inbox.cursor = i
				break
			}
		}
	}
	m.ensureCursorVisible()
}
