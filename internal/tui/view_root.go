package tui

// View renders the UI.
func (m Model) View() string {
	var output string
	switch {
	case m.currentView == viewSignIn:
		output = m.renderSignInView()
	case m.detail.open:
		output = m.overlayDetail(m.renderListView(), m.renderDetailModal())
	default:
		output = m.renderListView()
	}

	// Overlay modals on top of base view
	if m.ui.showHelp {
		output = m.overlayModal(output, m.renderHelpModal())
	} else if m.ui.showError && m.ui.err != nil {
		output = m.overlayModal(output, m.renderErrorModal())
	}

	return m.ui.alert.Render(output)
}
