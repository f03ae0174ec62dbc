package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// Invisible characters mail clients scatter through subjects and preheaders.
var zeroWidthReplacer = strings.NewReplacer(
	"\u034F", "",
	"\u200B", "",
	"\u200C", "",
	"\u200D", "",
	"\u200E", "",
	"\u200F", "",
	"\u2060", "",
	"\uFEFF", "",
)

func stripZeroWidth(text string) string {
	return zeroWidthReplacer.Replace(text)
}

func stripLeadingZeroWidth(text string) string {
	return strings.TrimLeftFunc(text, func(r rune) bool {
		return r != unicode.ReplacementChar && (runewidth.RuneWidth(r) == 0 ||
			unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me))
	})
}

func renderFixedLayout(height int, body, footer string) string {
	bodyHeight := max(0, height-lipgloss.Height(footer))
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// wrapTextLines word-wraps text into exactly maxLines lines of at most width
// cells. Whatever does not fit is folded into the last line and truncated.
func wrapTextLines(text string, width int, maxLines int) []string {
	if maxLines <= 0 {
		return nil
	}
	lines := make([]string, 0, maxLines)
	if width > 0 {
		text = strings.Join(strings.Fields(text), " ")
		wrapped := strings.Split(wordwrap.String(text, width), "\n")
		if len(wrapped) > maxLines {
			rest := strings.Join(wrapped[maxLines-1:], " ")
			wrapped = append(wrapped[:maxLines-1], rest)
		}
		for _, line := range wrapped {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, truncateToWidth(line, width))
			}
		}
	}
	for len(lines) < maxLines {
		lines = append(lines, "")
	}
	return lines
}
