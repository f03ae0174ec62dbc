package tui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"go.withmatt.com/triage/internal/triage"
)

const (
	detailDefaultWidth = 80
	detailMaxWidth     = 100
	// detailChrome is the border plus padding around the detail viewport.
	detailChrome = 4
)

var (
	htmlTagPattern    = regexp.MustCompile(`(?i)<(html|body|div|p|br|table|span|a)\b`)
	styleBlockPattern = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptPattern     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
)

// detailSize is the outer size of the detail modal for the current window.
func (m *Model) detailSize() (width, height int) {
	width = detailDefaultWidth
	if m.ui.width > 0 {
		width = min(detailMaxWidth, max(m.ui.width-8, 20))
	}
	height = 20
	if m.ui.height > 0 {
		height = max(m.ui.height-4, 6)
	}
	return width, height
}

// layoutDetail sizes the viewport and rebuilds the markdown renderer when
// the wrap width changes.
func (m *Model) layoutDetail() {
	width, height := m.detailSize()
	inner := max(width-detailChrome, 10)
	m.detail.viewport.Width = inner
	m.detail.viewport.Height = max(height-detailChrome-1, 1)

	if inner == m.renderers.glamourWidth && m.renderers.glamourRenderer != nil {
		return
	}
	r, err := newGlamourRenderer(m.theme, m.session.State().Mode, inner)
	if err != nil {
		m.logf("glamour renderer: %v", err)
		return
	}
	m.renderers.glamourRenderer = r
	m.renderers.glamourWidth = inner
}

// recordMarkdown lays out a record as a markdown document for the detail
// modal.
func recordMarkdown(r triage.Record, body string, now time.Time) string {
	var b strings.Builder

	subject := strings.TrimSpace(stripZeroWidth(r.Subject))
	if subject == "" {
		subject = "(no subject)"
	}
	fmt.Fprintf(&b, "# %s\n\n", subject)

	fmt.Fprintf(&b, "**From:** %s  \n", stripZeroWidth(r.From))
	if r.Date.IsZero() {
		b.WriteString("**Date:** unknown  \n")
	} else {
		fmt.Fprintf(&b, "**Date:** %s (%s)  \n",
			r.Date.Local().Format("Mon, Jan 2, 2006 at 3:04 PM"),
			triage.RelativeAge(r.Date, now))
	}
	fmt.Fprintf(&b, "**Priority:** %s", priorityLabel(r.Priority))
	var flags []string
	if !r.IsRead {
		flags = append(flags, "unread")
	}
	if r.IsStarred {
		flags = append(flags, "starred")
	}
	if r.IsImportant {
		flags = append(flags, "important")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, " · %s", strings.Join(flags, ", "))
	}
	b.WriteString("\n\n## Summary\n\n")
	b.WriteString(strings.TrimSpace(r.Summary))
	b.WriteString("\n")

	if len(r.KeyPoints) > 0 {
		b.WriteString("\n## Key points\n\n")
		for _, p := range r.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	b.WriteString("\n---\n\n")
	if body = strings.TrimSpace(body); body == "" {
		b.WriteString("_No message body_\n")
	} else {
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

// bodyMarkdown returns the record body ready for markdown rendering,
// converting HTML-only bodies when a converter is available.
func bodyMarkdown(conv *md.Converter, body string) string {
	body = normalizeRawForDisplay(stripZeroWidth(body))
	if conv == nil || !htmlTagPattern.MatchString(body) {
		return body
	}
	cleaned := scriptPattern.ReplaceAllString(styleBlockPattern.ReplaceAllString(body, ""), "")
	out, err := conv.ConvertString(cleaned)
	if err != nil {
		return body
	}
	return out
}

func (m *Model) renderDetailBody(r triage.Record) string {
	doc := recordMarkdown(r, bodyMarkdown(m.renderers.htmlConverter, r.Body), m.now())
	if m.renderers.glamourRenderer == nil {
		return wordwrap.String(doc, m.detail.viewport.Width)
	}
	rendered, err := m.renderers.glamourRenderer.Render(doc)
	if err != nil {
		m.logf("render detail %s: %v", r.ID, err)
		return wordwrap.String(doc, m.detail.viewport.Width)
	}
	return strings.TrimSpace(rendered)
}

func (m *Model) renderDetailModal() string {
	r, _ := m.session.Selected()
	scroll := int(m.detail.viewport.ScrollPercent() * 100)

	footerStyle := lipgloss.NewStyle().
		Width(m.detail.viewport.Width).
		Foreground(lipgloss.Color(m.theme.Modal.FooterFg))
	footer := fmt.Sprintf("%s  %d%%  j/k prev/next • space scroll • esc close",
		priorityLabel(r.Priority), scroll)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.detail.viewport.View(),
		footerStyle.Render(truncateToWidth(footer, m.detail.viewport.Width)),
	)
}

// overlayDetail draws the detail modal over the list.
func (m *Model) overlayDetail(baseView string, modal string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Detail.BorderSelected)).
		Padding(0, 1)
	return overlay.Composite(style.Render(modal), baseView, overlay.Center, overlay.Center, 0, 0)
}

func normalizeRawForDisplay(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.ReplaceAll(raw, "\r", "\n")
}
