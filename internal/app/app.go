// Package app is the demo program hosting a single combobox.
package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/combobox/internal/combobox"
	"github.com/zhubert/combobox/internal/config"
	"github.com/zhubert/combobox/internal/datasource"
	"github.com/zhubert/combobox/internal/keys"
	"github.com/zhubert/combobox/internal/logger"
	"github.com/zhubert/combobox/internal/ui"
)

// Title is shown in the header
const Title = "combobox"

// Widget is the combobox specialised to loaded records
type Widget = ui.Model[combobox.Record]

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	header  *ui.Header
	footer  *ui.Footer
	widget  *Widget

	records  []combobox.Record
	accessor combobox.Accessor[combobox.Record]
	mode     datasource.Mode
	visible  int // records currently offered

	layout ui.Layout
	width  int
	height int

	status    string
	statusErr bool

	initCmds []tea.Cmd
	log      *slog.Logger
}

// New creates the demo model around records. Field paths, filter mode and
// widget settings come from cfg.
func New(cfg *config.Config, records []combobox.Record, version string) (*Model, error) {
	if theme := cfg.GetTheme(); theme != "" {
		ui.SetThemeByName(theme)
	}

	acc, err := combobox.PathAccessor(cfg.GetPaths())
	if err != nil {
		return nil, err
	}

	widget, err := ui.New(ui.Config[combobox.Record]{
		Value:          cfg.InitialValue(),
		Placeholder:    cfg.GetPlaceholder(),
		Accessor:       acc,
		Width:          cfg.GetWidth(),
		MaxVisible:     cfg.GetMaxVisible(),
		ToggleDisabled: cfg.ToggleDisabled,
	})
	if err != nil {
		return nil, err
	}

	m := &Model{
		config:   cfg,
		version:  version,
		header:   ui.NewHeader(Title),
		footer:   ui.NewFooter(),
		widget:   widget,
		records:  records,
		accessor: acc,
		mode:     cfg.GetFilterMode(),
		visible:  len(records),
		log:      logger.ComponentLogger("App"),
	}
	m.header.SetStatus(version)
	m.initCmds = append(m.initCmds, widget.SetItems(records), widget.Focus())

	m.log.Info("demo started", "records", len(records), "mode", m.mode, "value", widget.Value())
	return m, nil
}

// Widget returns the hosted combobox
func (m *Model) Widget() *Widget { return m.widget }

// Status returns the status line and whether it reports an error
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

// Init focuses the widget and loads the initial options
func (m *Model) Init() tea.Cmd {
	cmds := m.initCmds
	m.initCmds = nil
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseWheelMsg:
		return m, m.routeMouseEvent(msg)

	case ui.SelectedMsg[combobox.Record]:
		return m, m.handleSelected(msg)

	case ui.InputChangedMsg[combobox.Record]:
		return m, m.handleInputChanged(msg)
	}

	// Deferred work and cursor blinks belong to the widget
	var cmd tea.Cmd
	m.widget, cmd = m.widget.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.CtrlC:
		return tea.Quit
	case keys.Tab, keys.ShiftTab:
		if m.widget.Focused() {
			return m.widget.Blur()
		}
		return m.widget.Focus()
	case "q":
		if !m.widget.Focused() {
			return tea.Quit
		}
	}

	var cmd tea.Cmd
	m.widget, cmd = m.widget.Update(msg)
	return cmd
}

func (m *Model) handleSelected(msg ui.SelectedMsg[combobox.Record]) tea.Cmd {
	m.log.Info("selected", "value", msg.Value, "label", msg.Label)
	m.header.SetStatus(msg.Value)
	m.setStatus(fmt.Sprintf("Selected %s (%s)", msg.Label, msg.Value), false)

	m.config.AddRecent(msg.Value)
	if m.config.RememberSelection {
		if err := m.config.Save(); err != nil {
			m.log.Error("failed to save config", "error", err)
			m.setStatus(err.Error(), true)
		}
	}
	return nil
}

// handleInputChanged rebuilds the option list for the new text. Text that
// is exactly the selection shows everything, so reopening the list after a
// selection is not a list of one.
func (m *Model) handleInputChanged(msg ui.InputChangedMsg[combobox.Record]) tea.Cmd {
	term := msg.Text
	if msg.Selected != nil && m.accessor.Text(*msg.Selected) == term {
		term = ""
	}

	items := datasource.Filter(m.records, term, m.mode, m.accessor.Label, m.accessor.Value)
	m.visible = len(items)
	m.log.Debug("options filtered", "term", term, "matches", len(items))

	cmds := []tea.Cmd{m.widget.SetItems(items)}
	if msg.Typed && term != "" && m.widget.Focused() {
		cmds = append(cmds, m.widget.Open())
	}
	return tea.Batch(cmds...)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// updateSizes recalculates the layout after a resize
func (m *Model) updateSizes() {
	m.layout = ui.NewLayout(m.width, m.height, m.config.GetWidth(), m.config.GetMaxVisible())
	m.header.SetWidth(m.layout.TerminalWidth)
	m.footer.SetWidth(m.layout.TerminalWidth)
	m.widget.SetWidth(m.layout.WidgetWidth)
	m.widget.SetMaxVisible(m.layout.MaxVisible)
}
