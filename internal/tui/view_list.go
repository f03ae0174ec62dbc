package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"go.withmatt.com/triage/internal/config"
	"go.withmatt.com/triage/internal/triage"
)

const (
	starGlyph    = "★"
	fromMaxWidth = 28
)

type rightPart struct {
	text  string
	style lipgloss.Style
}

func rightPartsWidth(parts []rightPart) int {
	width := 0
	count := 0
	for _, part := range parts {
		if part.text == "" {
			continue
		}
		if count > 0 {
			width++
		}
		width += lipgloss.Width(part.text)
		count++
	}
	if count > 0 {
		width++
	}
	return width
}

func renderRightParts(parts []rightPart) string {
	var b strings.Builder
	for _, part := range parts {
		if part.text == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(part.style.Render(part.text))
	}
	return b.String()
}

type listStyles struct {
	unread    lipgloss.Style
	read      lipgloss.Style
	dim       lipgloss.Style
	summary   lipgloss.Style
	star      lipgloss.Style
	selected  lipgloss.Style
	unreadBar lipgloss.Style
}

func newListStyles(theme config.Theme) listStyles {
	return listStyles{
		unread: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.List.UnreadFg)).
			Bold(true),
		read:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.List.ReadFg)),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Status.Dim)),
		summary: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Status.Dim)).Faint(true),
		star:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.List.StarFg)),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.List.SelectedFg)),
		unreadBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.List.UnreadFg)).
			Bold(true),
	}
}

// priorityBadge renders the short colored tier label shown on every row.
func priorityBadge(theme config.Theme, p triage.Priority) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(priorityColor(theme, p))).
		Foreground(lipgloss.Color(theme.Priority.BadgeFg)).
		Bold(true).
		Render(fmt.Sprintf(" %-4s ", priorityLabel(p)))
}

func priorityLabel(p triage.Priority) string {
	switch p {
	case triage.PriorityHigh:
		return "HIGH"
	case triage.PriorityMedium:
		return "MED"
	case triage.PriorityLow:
		return "LOW"
	case triage.PrioritySpam:
		return "SPAM"
	default:
		return strings.ToUpper(string(p))
	}
}

// senderName extracts the display name from "Name <addr>".
func senderName(from string) string {
	from = stripZeroWidth(from)
	if idx := strings.Index(from, "<"); idx > 0 {
		from = strings.TrimSpace(from[:idx])
	}
	return strings.Trim(from, `"`)
}

func padToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

func (m *Model) renderListView() string {
	header := m.renderStatsBar()

	if m.inbox.loading {
		return m.renderListLayout(header, m.ui.spinner.View()+" Loading inbox...")
	}
	if len(m.inbox.records) == 0 {
		msg := "No emails match the current filters"
		if m.inbox.stats.Total == 0 {
			msg = "No emails"
		}
		return m.renderListLayout(header, msg)
	}

	styles := newListStyles(m.theme)
	layout := m.session.State().Layout
	now := m.now()

	var body strings.Builder
	start, end := m.getVisibleRange()
	for i := start; i < end; i++ {
		r := m.inbox.records[i]
		selected := i == m.inbox.cursor
		if layout == config.LayoutList {
			body.WriteString(m.renderListRow(styles, r, selected, now))
			body.WriteString("\n")
			continue
		}
		body.WriteString(m.renderCard(styles, r, selected, now))
		body.WriteString("\n\n")
	}
	return m.renderListLayout(header, strings.TrimRight(body.String(), "\n"))
}

func (m *Model) rowPrefix(styles listStyles, r triage.Record, selected bool) string {
	switch {
	case selected:
		return styles.selected.Render("┃")
	case !r.IsRead:
		return styles.unreadBar.Render("│")
	default:
		return " "
	}
}

func (m *Model) rowRightParts(styles listStyles, r triage.Record, now time.Time) []rightPart {
	parts := []rightPart{}
	if r.IsStarred {
		parts = append(parts, rightPart{text: starGlyph, style: styles.star})
	}
	parts = append(parts, rightPart{text: triage.RelativeAge(r.Date, now), style: styles.dim})
	return parts
}

// renderListRow renders a record as a single compact line.
func (m *Model) renderListRow(styles listStyles, r triage.Record, selected bool, now time.Time) string {
	prefix := m.rowPrefix(styles, r, selected)
	badge := priorityBadge(m.theme, r.Priority)
	lineWidth := max(m.ui.width-lipgloss.Width(prefix)-lipgloss.Width(badge)-2, 0)

	right := renderRightParts(m.rowRightParts(styles, r, now))
	textStyle := styles.read
	if !r.IsRead {
		textStyle = styles.unread
	}

	available := max(lineWidth-lipgloss.Width(right), 0)
	from := truncateToWidth(senderName(r.From), min(fromMaxWidth, available/3))
	subjectWidth := max(available-lipgloss.Width(from)-2, 0)
	subject := truncateToWidth(stripZeroWidth(r.Subject), subjectWidth)

	left := padToWidth(from, min(fromMaxWidth, available/3)) + "  " + subject
	left = padToWidth(left, available)
	return prefix + badge + " " + textStyle.Render(left) + right
}

// renderCard renders a record as a multi-line card with its summary.
func (m *Model) renderCard(styles listStyles, r triage.Record, selected bool, now time.Time) string {
	prefix := m.rowPrefix(styles, r, selected)
	badge := priorityBadge(m.theme, r.Priority)
	lineWidth := max(m.ui.width-lipgloss.Width(prefix)-1, 0)

	textStyle := styles.read
	summaryStyle := styles.summary
	if !r.IsRead {
		textStyle = styles.unread
		summaryStyle = styles.dim
	}

	parts := m.rowRightParts(styles, r, now)
	right := renderRightParts(parts)
	if rightPartsWidth(parts) > lineWidth {
		right = ""
	}
	fromWidth := max(lineWidth-lipgloss.Width(badge)-1-lipgloss.Width(right), 0)
	from := truncateToWidth(senderName(r.From), min(fromMaxWidth, fromWidth))
	line1 := prefix + badge + " " + textStyle.Render(padToWidth(from, fromWidth)) + right

	subject := stripZeroWidth(r.Subject)
	if subject == "" {
		subject = "(no subject)"
	}
	line2 := prefix + textStyle.Render(padToWidth(truncateToWidth(subject, lineWidth), lineWidth))

	var b strings.Builder
	b.WriteString(line1)
	b.WriteString("\n")
	b.WriteString(line2)
	lines := m.uiConfig.CardSummaryLines
	for _, line := range wrapTextLines(stripZeroWidth(r.Summary), lineWidth, max(lines, 1)) {
		line = stripLeadingZeroWidth(line)
		b.WriteString("\n")
		b.WriteString(prefix)
		b.WriteString(summaryStyle.Render(padToWidth(line, lineWidth)))
	}
	return b.String()
}

func (m *Model) renderListLayout(header string, body string) string {
	footerLine := m.renderListStatusline()
	footerHeight := lipgloss.Height(footerLine)
	headerHeight := lipgloss.Height(header)
	bodyHeight := max(0, m.ui.height-headerHeight-footerHeight)
	bodyStyle := lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight)
	body = bodyStyle.Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footerLine)
}

// renderStatsBar shows the aggregate counts for the whole working set.
func (m *Model) renderStatsBar() string {
	bar := statusBar{theme: m.theme}
	var right []statusSegment
	if name := m.profileLabel(); name != "" {
		right = append(right, bar.dim(name))
	}
	return bar.render(m.ui.width, bar.stats(m.inbox.stats), right)
}

func (m *Model) profileLabel() string {
	switch {
	case m.profile.Name != "":
		return stripZeroWidth(m.profile.Name)
	case m.profile.Email != "":
		return m.profile.Email
	default:
		return ""
	}
}

func (m *Model) renderListStatusline() string {
	state := m.session.State()
	count := len(m.inbox.records)
	pos := 0
	if count > 0 {
		pos = min(m.inbox.cursor+1, count)
	}

	bar := statusBar{theme: m.theme}
	left := append(bar.modeTab("INBOX", strings.ToUpper(string(state.Layout))), bar.filter(state.Criteria)...)

	var right []statusSegment
	switch {
	case m.inbox.refreshing:
		right = append(right, bar.dim(m.ui.spinner.View()+" refreshing"))
	case m.inbox.loading:
		right = append(right, bar.dim("loading"))
	}
	right = append(right,
		bar.text(fmt.Sprintf("%d/%d", pos, count)),
		bar.dim("? help"),
		bar.dim("q quit"),
	)

	return bar.render(m.ui.width, left, right)
}
