package ui

import "github.com/zhubert/combobox/internal/logger"

// Layout holds the demo screen's layout calculations. All positions are
// zero-based cells.
type Layout struct {
	TerminalWidth  int
	TerminalHeight int

	// ContentHeight is everything between header and footer
	ContentHeight int

	// LabelY is the row of the field label above the widget
	LabelY int

	// Widget placement
	WidgetX     int
	WidgetY     int
	WidgetWidth int

	// MaxVisible is how many option rows fit below the widget, leaving
	// room for the status line
	MaxVisible int
}

// NewLayout computes the layout for a terminal of the given size. The
// widget is at most maxWidth wide and shows at most maxVisible options.
func NewLayout(width, height, maxWidth, maxVisible int) Layout {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	l := Layout{
		TerminalWidth:  width,
		TerminalHeight: height,
		ContentHeight:  height - HeaderHeight - FooterHeight,
		LabelY:         HeaderHeight + ContentPadding,
		WidgetX:        ContentPadding * 2,
	}
	l.WidgetY = l.LabelY + 1
	l.WidgetWidth = min(maxWidth, width-2*l.WidgetX)
	if l.WidgetWidth < MinWidth {
		l.WidgetWidth = MinWidth
	}

	// Rows under the widget's input row, minus a gap and the status line
	room := height - FooterHeight - (l.WidgetY + InputHeight) - ContentPadding - StatusHeight
	l.MaxVisible = max(1, min(maxVisible, room))

	logger.ComponentLogger("ui").Debug("layout computed",
		"width", width,
		"height", height,
		"widgetWidth", l.WidgetWidth,
		"maxVisible", l.MaxVisible,
	)
	return l
}

// Relative converts a screen cell into widget coordinates.
func (l Layout) Relative(x, y int) (int, int) {
	return x - l.WidgetX, y - l.WidgetY
}
