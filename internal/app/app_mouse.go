package app

import tea "charm.land/bubbletea/v2"

// routeMouseEvent hands mouse events to the widget in widget coordinates.
// Clicks anywhere else reach it too, so it can tell that focus left.
func (m *Model) routeMouseEvent(msg tea.Msg) tea.Cmd {
	var adjusted tea.Msg
	switch mouseMsg := msg.(type) {
	case tea.MouseClickMsg:
		adjusted = m.adjustMouseClickMsg(mouseMsg)
	case tea.MouseMotionMsg:
		adjusted = m.adjustMouseMotionMsg(mouseMsg)
	case tea.MouseWheelMsg:
		adjusted = m.adjustMouseWheelMsg(mouseMsg)
	default:
		return nil
	}

	var cmd tea.Cmd
	m.widget, cmd = m.widget.Update(adjusted)
	return cmd
}

// adjustMouseClickMsg moves click coordinates to the widget's origin.
func (m *Model) adjustMouseClickMsg(msg tea.MouseClickMsg) tea.MouseClickMsg {
	x, y := m.layout.Relative(msg.X, msg.Y)
	return tea.MouseClickMsg{
		X:      x,
		Y:      y,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseMotionMsg moves motion coordinates to the widget's origin.
func (m *Model) adjustMouseMotionMsg(msg tea.MouseMotionMsg) tea.MouseMotionMsg {
	x, y := m.layout.Relative(msg.X, msg.Y)
	return tea.MouseMotionMsg{
		X:      x,
		Y:      y,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseWheelMsg moves wheel coordinates to the widget's origin.
func (m *Model) adjustMouseWheelMsg(msg tea.MouseWheelMsg) tea.MouseWheelMsg {
	x, y := m.layout.Relative(msg.X, msg.Y)
	return tea.MouseWheelMsg{
		X:      x,
		Y:      y,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}
