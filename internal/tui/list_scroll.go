package tui

import "go.withmatt.com/triage/internal/config"

const (
	listHeaderHeight = 1
	listFooterHeight = 1
)

// listCardHeight is the number of terminal rows one record occupies,
// including the blank separator line.
func (m *Model) listCardHeight() int {
	if m.session.State().Layout == config.LayoutList {
		return 1
	}
	lines := m.uiConfig.CardSummaryLines
	if lines <= 0 {
		lines = 1
	}
	return lines + 3
}

func (m *Model) visibleCardCount() int {
	availableHeight := m.ui.height - listHeaderHeight - listFooterHeight
	if availableHeight <= 0 {
		return 0
	}
	return availableHeight / m.listCardHeight()
}

// getVisibleRange calculates which records should be visible.
func (m *Model) getVisibleRange() (start, end int) {
	total := len(m.inbox.records)
	if total == 0 {
		return 0, 0
	}

	visible := m.visibleCardCount()
	if visible <= 0 || total <= visible {
		return 0, total
	}

	maxStart := max(total-visible, 0)
	start = min(max(m.inbox.scrollOffset, 0), maxStart)
	return start, start + visible
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleCardCount()
	count := len(m.inbox.records)
	if visible <= 0 || count <= visible {
		m.inbox.scrollOffset = 0
		return
	}

	maxOffset := count - visible
	if m.inbox.cursor < m.inbox.scrollOffset {
		m.inbox.scrollOffset = m.inbox.cursor
	} else if m.inbox.cursor >= m.inbox.scrollOffset+visible {
		m.inbox.scrollOffset = m.inbox.cursor - visible + 1
	}
	m.inbox.scrollOffset = min(max(m.inbox.scrollOffset, 0), maxOffset)
}
