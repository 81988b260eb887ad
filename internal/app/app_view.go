package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/combobox/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.footer.SetContext(m.widget.Focused(), m.widget.IsOpen())

	indent := strings.Repeat(" ", m.layout.WidgetX)
	var body []string
	for len(body) < m.layout.LabelY-ui.HeaderHeight {
		body = append(body, "")
	}
	body = append(body, indent+ui.LabelStyle.Render(m.config.GetLabel()))
	for _, line := range strings.Split(m.widget.View(), "\n") {
		body = append(body, indent+line)
	}
	for range ui.ContentPadding {
		body = append(body, "")
	}
	body = append(body, indent+m.statusLine())

	// Pad or cut to the content height so the footer stays at the bottom
	contentHeight := m.layout.ContentHeight
	if len(body) > contentHeight {
		body = body[:contentHeight]
	}
	for len(body) < contentHeight {
		body = append(body, "")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		strings.Join(body, "\n"),
		m.footer.View(),
	)
}

func (m *Model) statusLine() string {
	if m.statusErr {
		return ui.StatusErrorStyle.Render(m.status)
	}
	if m.status != "" {
		return ui.StatusStyle.Render(m.status)
	}
	return ui.FooterDescStyle.Render(fmt.Sprintf("%d of %d options", m.visible, len(m.records)))
}
