package ui

// Layout constants
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// InputHeight is the row holding the text field and the toggle
	InputHeight = 1

	// ToggleWidth is the column reserved for the toggle glyph plus a gap
	ToggleWidth = 2

	// MarkerWidth is the selection marker in front of each option label
	MarkerWidth = 2

	// MinWidth is the narrowest the widget will render
	MinWidth = 10

	// DefaultWidth is used until the host sets one
	DefaultWidth = 40

	// DefaultMaxVisible is how many option rows show before the list scrolls
	DefaultMaxVisible = 8

	// InputCharLimit is the character limit for the text field
	InputCharLimit = 256
)

// Glyphs
const (
	GlyphClosed   = "▾"
	GlyphOpen     = "▴"
	GlyphSelected = "✓"
	GlyphEllipsis = "…"
)

// Demo screen
const (
	// MinTerminalWidth and MinTerminalHeight keep the layout from going negative
	MinTerminalWidth  = 20
	MinTerminalHeight = 8

	// ContentPadding is the gap around the content area
	ContentPadding = 1

	// StatusHeight is the status line under the widget
	StatusHeight = 1
)
