package ui

import (
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"
)

// Color palette, regenerated by SetTheme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorBgSelected  = lipgloss.Color("#7C3AED")
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
)

// Header styles
var (
	HeaderStyle      lipgloss.Style
	HeaderTitleStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Widget styles
var (
	InputStyle            lipgloss.Style
	InputFocusedStyle     lipgloss.Style
	InputPlaceholderStyle lipgloss.Style
	ToggleStyle         lipgloss.Style
	ToggleDisabledStyle lipgloss.Style

	OptionStyle         lipgloss.Style
	OptionFocusedStyle  lipgloss.Style
	OptionSelectedStyle lipgloss.Style
	EmptyListStyle      lipgloss.Style
)

// Status styles
var (
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	LabelStyle       lipgloss.Style
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the color variables.
func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	InputStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	InputFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Underline(true)

	InputPlaceholderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ToggleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	ToggleDisabledStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Faint(true)

	OptionStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	// Focused wins over selected when both apply
	OptionFocusedStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText).
		Bold(true)

	OptionSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	EmptyListStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
}

// ApplyTextInputStyles styles a text input from the current palette.
// The input emits its own escape sequences for text and cursor, so its
// View must be used as is and never rendered through another style.
func ApplyTextInputStyles(ti *textinput.Model) {
	styles := ti.Styles()

	styles.Focused.Text = InputFocusedStyle
	styles.Focused.Prompt = InputFocusedStyle
	styles.Focused.Placeholder = InputPlaceholderStyle
	styles.Focused.Suggestion = InputPlaceholderStyle

	styles.Blurred.Text = InputStyle
	styles.Blurred.Prompt = InputStyle
	styles.Blurred.Placeholder = InputPlaceholderStyle
	styles.Blurred.Suggestion = InputPlaceholderStyle

	styles.Cursor.Color = ColorPrimary

	ti.SetStyles(styles)
}
