package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"go.withmatt.com/triage/internal/config"
	"go.withmatt.com/triage/internal/triage"
)

const (
	statusSeparatorGlyph = "\ue0b0"
	ellipsis             = "..."
)

type segmentKind int

const (
	segmentText segmentKind = iota
	segmentDim
	segmentMode
	segmentTab
)

// statusSegment is one styled cell of a status line.
type statusSegment struct {
	text  string
	style lipgloss.Style
}

// statusBar builds status line segments for a single theme.
type statusBar struct {
	theme config.Theme
}

func (b statusBar) base() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(b.theme.Status.Bg)).
		Foreground(lipgloss.Color(b.theme.Status.Fg))
}

func (b statusBar) style(kind segmentKind) lipgloss.Style {
	s := b.theme.Status
	switch kind {
	case segmentDim:
		return b.base().Foreground(lipgloss.Color(s.Dim)).Padding(0, 1)
	case segmentMode:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(s.ModeBg)).
			Foreground(lipgloss.Color(s.ModeFg)).
			Bold(true).
			Padding(0, 1)
	case segmentTab:
		return lipgloss.NewStyle().
			Background(lipgloss.Color(s.TabBg)).
			Foreground(lipgloss.Color(s.TabFg)).
			Bold(true).
			Padding(0, 1)
	default:
		return b.base().Padding(0, 1)
	}
}

func (b statusBar) seg(kind segmentKind, text string) statusSegment {
	return statusSegment{text: text, style: b.style(kind)}
}

func (b statusBar) text(s string) statusSegment {
	return b.seg(segmentText, s)
}

func (b statusBar) dim(s string) statusSegment {
	return b.seg(segmentDim, s)
}

// separator draws the powerline arrow between two backgrounds.
func (b statusBar) separator(leftBg, rightBg string) statusSegment {
	return statusSegment{
		text: statusSeparatorGlyph,
		style: lipgloss.NewStyle().
			Background(lipgloss.Color(rightBg)).
			Foreground(lipgloss.Color(leftBg)),
	}
}

// modeTab is the "MODE > TAB >" prefix used by the list view.
func (b statusBar) modeTab(mode, tab string) []statusSegment {
	s := b.theme.Status
	return []statusSegment{
		b.seg(segmentMode, mode),
		b.separator(s.ModeBg, s.TabBg),
		b.seg(segmentTab, tab),
		b.separator(s.TabBg, s.Bg),
	}
}

// stats renders the working-set counters. Spam is dimmed unless present.
func (b statusBar) stats(s triage.Stats) []statusSegment {
	spam := b.dim(fmt.Sprintf("%d spam", s.Spam))
	if s.Spam > 0 {
		spam.style = spam.style.Foreground(lipgloss.Color(priorityColor(b.theme, triage.PrioritySpam)))
	}
	return []statusSegment{
		b.text(fmt.Sprintf("%d emails", s.Total)),
		b.text(fmt.Sprintf("%d unread", s.Unread)),
		b.text(fmt.Sprintf("%d important", s.Important)),
		spam,
	}
}

// filter renders the active criteria. A narrowed priority takes its tier color.
func (b statusBar) filter(c triage.Criteria) []statusSegment {
	priority := b.dim("priority: " + string(c.Priority))
	if c.Priority != triage.PriorityAll {
		priority.style = priority.style.
			Foreground(lipgloss.Color(priorityColor(b.theme, c.Priority))).
			Bold(true)
	}
	show := b.dim("show: " + string(c.Visibility))
	if c.Visibility != triage.VisibilityAll {
		show = b.text("show: " + string(c.Visibility))
	}
	return []statusSegment{b.text(ageLabel(c.MaxAgeDays)), priority, show}
}

func (b statusBar) render(width int, left, right []statusSegment) string {
	leftLine := renderSegments(left)
	rightLine := renderSegments(right)

	if width <= 0 {
		switch {
		case rightLine == "":
			return leftLine
		case leftLine == "":
			return rightLine
		}
		return leftLine + b.base().Render(" ") + rightLine
	}

	gap := max(width-lipgloss.Width(leftLine)-lipgloss.Width(rightLine), 1)
	return leftLine + b.base().Render(strings.Repeat(" ", gap)) + rightLine
}

func renderSegments(segments []statusSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.text != "" {
			b.WriteString(seg.style.Render(seg.text))
		}
	}
	return b.String()
}

func priorityColor(theme config.Theme, p triage.Priority) string {
	switch p {
	case triage.PriorityHigh:
		return theme.Priority.High
	case triage.PriorityLow:
		return theme.Priority.Low
	case triage.PrioritySpam:
		return theme.Priority.Spam
	default:
		return theme.Priority.Medium
	}
}

func ageLabel(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "last 24 hours"
	case 365:
		return "last year"
	default:
		return fmt.Sprintf("last %d days", days)
	}
}

// truncateToWidth cuts text to maxWidth cells, ending in an ellipsis.
func truncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	if maxWidth <= len(ellipsis) {
		return strings.Repeat(".", maxWidth)
	}
	return truncate.StringWithTail(text, uint(maxWidth), ellipsis)
}
