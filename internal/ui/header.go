package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Header represents the top header bar
type Header struct {
	width  int
	title  string
	status string
}

// NewHeader creates a new header
func NewHeader(title string) *Header {
	return &Header{title: title}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetStatus sets the right-aligned text, typically the current value
func (h *Header) SetStatus(status string) {
	h.status = status
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + h.title
	var rightText string
	if h.status != "" {
		rightText = h.status + " "
	}

	paddingLen := h.width - ansi.StringWidth(titleText) - ansi.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	return h.renderGradient(titleText+strings.Repeat(" ", paddingLen)+rightText, len([]rune(titleText)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient fades the background from the theme's primary color into
// its background. The first boldLen runes are bold.
func (h *Header) renderGradient(content string, boldLen int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < boldLen)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
