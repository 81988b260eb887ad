package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/zhubert/combobox/internal/keys"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width         int
	widgetFocused bool // Whether keyboard focus is inside the widget
	listOpen      bool // Whether the option list is showing
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(widgetFocused, listOpen bool) {
	f.widgetFocused = widgetFocused
	f.listOpen = listOpen
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// Bindings returns the shortcuts that apply in the current context
func (f *Footer) Bindings() []KeyBinding {
	switch {
	case !f.widgetFocused:
		return []KeyBinding{
			{Key: keys.Tab, Desc: "focus"},
			{Key: "q", Desc: "quit"},
		}
	case f.listOpen:
		return []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: keys.Enter, Desc: "select"},
			{Key: keys.Escape, Desc: "close"},
			{Key: keys.Tab, Desc: "leave"},
		}
	default:
		return []KeyBinding{
			{Key: "type", Desc: "filter"},
			{Key: keys.Down, Desc: "open"},
			{Key: keys.CtrlT, Desc: "toggle"},
			{Key: keys.Tab, Desc: "leave"},
			{Key: keys.CtrlC, Desc: "quit"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
