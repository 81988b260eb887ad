package ui

import (
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/combobox/internal/combobox"
	"github.com/zhubert/combobox/internal/keys"
	"github.com/zhubert/combobox/internal/logger"
)

// SelectedMsg is sent to the host when a selection completes.
type SelectedMsg[T any] struct {
	WidgetID string
	Value    string
	Label    string
	Item     T
}

// InputChangedMsg is sent to the host whenever the text in the field
// changes. Typed is false when the change came from a selection.
type InputChangedMsg[T any] struct {
	WidgetID string
	Text     string
	Selected *T
	Typed    bool
}

// flushMsg asks the widget with the given id to run its deferred work.
type flushMsg struct {
	id string
}

// Config configures a new Model.
type Config[T any] struct {
	Value          string
	Placeholder    string
	Accessor       combobox.Accessor[T]
	Width          int
	MaxVisible     int
	ToggleDisabled bool
}

// Model renders a Combobox in the terminal and feeds it keyboard and mouse
// input. Mouse coordinates are relative to the widget's top-left cell.
type Model[T any] struct {
	id     string
	cb     *combobox.Combobox[T]
	input  *combobox.Input[T]
	toggle *combobox.Toggle[T]
	text   textinput.Model

	options []*combobox.Option[T]
	pending []tea.Msg
	typing  bool

	width       int
	maxVisible  int
	offset      int
	lastFocused int

	log *slog.Logger
}

// New creates a widget. It fails when the accessor is incomplete.
func New[T any](cfg Config[T]) (*Model[T], error) {
	m := &Model[T]{
		maxVisible:  DefaultMaxVisible,
		lastFocused: -1,
	}
	cb, err := combobox.New(combobox.Config[T]{
		Value:         cfg.Value,
		Placeholder:   cfg.Placeholder,
		Accessor:      cfg.Accessor,
		OnSelect:      m.onSelect,
		OnInputChange: m.onInputChange,
	})
	if err != nil {
		return nil, err
	}
	m.cb = cb
	m.id = cb.ID()
	m.input = combobox.NewInput(cb)
	m.toggle = combobox.NewToggle(cb)
	m.toggle.Disabled = cfg.ToggleDisabled
	m.log = logger.WithWidget("ComboboxView", m.id)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = InputCharLimit
	ti.Placeholder = cfg.Placeholder
	ApplyTextInputStyles(&ti)
	m.text = ti

	width := cfg.Width
	if width <= 0 {
		width = DefaultWidth
	}
	// The input scrolls its value against its width, so size it first.
	m.SetWidth(width)
	m.text.SetValue(cb.InputText())
	if cfg.MaxVisible > 0 {
		m.maxVisible = cfg.MaxVisible
	}
	return m, nil
}

// ID identifies the widget; messages it emits carry it.
func (m *Model[T]) ID() string { return m.id }

// Combobox exposes the underlying state machine.
func (m *Model[T]) Combobox() *combobox.Combobox[T] { return m.cb }

func (m *Model[T]) Value() string { return m.cb.Value() }

func (m *Model[T]) InputText() string { return m.cb.InputText() }

func (m *Model[T]) IsOpen() bool { return m.cb.IsOpen() }

// Focused reports whether keyboard focus is anywhere inside the widget.
func (m *Model[T]) Focused() bool { return m.cb.HasFocus() }

// Selected returns the selected item.
func (m *Model[T]) Selected() (T, bool) {
	if o := m.cb.Selected(); o != nil {
		return o.Item(), true
	}
	var zero T
	return zero, false
}

// SetWidth sets the widget width in cells.
func (m *Model[T]) SetWidth(width int) {
	if width < MinWidth {
		width = MinWidth
	}
	m.width = width
	m.text.SetWidth(m.inputWidth() - 1)
}

func (m *Model[T]) Width() int { return m.width }

// SetMaxVisible sets how many option rows show before the list scrolls.
func (m *Model[T]) SetMaxVisible(n int) {
	if n < 1 {
		n = 1
	}
	m.maxVisible = n
	m.clampOffset()
}

// SetToggleDisabled enables or disables the toggle button.
func (m *Model[T]) SetToggleDisabled(disabled bool) {
	m.toggle.Disabled = disabled
}

// Height returns the number of rows View currently renders.
func (m *Model[T]) Height() int {
	if !m.cb.IsOpen() {
		return InputHeight
	}
	return InputHeight + max(1, m.visibleCount())
}

// SetItems replaces the option list. New options are mounted before the
// old ones go away so a selection carried by value survives the rebuild.
func (m *Model[T]) SetItems(items []T) tea.Cmd {
	old := m.options
	m.options = make([]*combobox.Option[T], 0, len(items))
	for _, item := range items {
		o := combobox.NewOption(m.cb, item)
		o.Mount()
		m.options = append(m.options, o)
	}
	for _, o := range old {
		o.Unmount()
	}
	m.log.Debug("items replaced", "count", len(items))
	m.lastFocused = -1
	m.clampOffset()
	return m.commands()
}

// SetValue binds a new value. The matching option is selected once the
// returned command has been processed.
func (m *Model[T]) SetValue(value string) tea.Cmd {
	m.cb.SetValue(value)
	return m.commands()
}

// Open shows the option list.
func (m *Model[T]) Open() tea.Cmd {
	m.cb.Open()
	return m.commands()
}

// Focus moves keyboard focus into the text field.
func (m *Model[T]) Focus() tea.Cmd {
	m.cb.FocusInput()
	return m.commands()
}

// Blur moves keyboard focus out of the widget.
func (m *Model[T]) Blur() tea.Cmd {
	m.cb.Blur()
	return m.commands()
}

// Destroy tears the widget down. Queued work is dropped.
func (m *Model[T]) Destroy() {
	m.cb.Destroy()
	m.options = nil
	m.pending = nil
}

// Update handles messages for the widget.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case flushMsg:
		if msg.id != m.id {
			return m, nil
		}
		ran := m.cb.Scheduler().Flush()
		m.log.Debug("deferred work flushed", "tasks", ran)

	case tea.KeyPressMsg:
		if !m.cb.HasFocus() {
			return m, nil
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return m, nil
		}
		m.handleClick(msg.X, msg.Y)

	case tea.MouseMotionMsg:
		m.handleMotion(msg.X, msg.Y)

	case tea.MouseWheelMsg:
		if !m.cb.IsOpen() || !m.contains(msg.X, msg.Y) {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseWheelUp:
			m.offset--
		case tea.MouseWheelDown:
			m.offset++
		}
		m.clampOffset()

	default:
		// Cursor blink and friends
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, m.commands(cmds...)
}

func (m *Model[T]) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.CtrlT:
		m.toggle.Click()
		return nil
	case keys.PgDown:
		m.page(m.maxVisible)
		return nil
	case keys.PgUp:
		m.page(-m.maxVisible)
		return nil
	}
	if m.cb.HandleKey(keyFromMsg(msg)) {
		return nil
	}
	if !m.input.Focused() {
		return nil
	}

	// The key may have just pulled focus back to the field.
	focusCmd := m.syncFocus()
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)

	m.typing = true
	m.cb.SetInputText(m.text.Value())
	m.typing = false

	return tea.Batch(focusCmd, cmd)
}

// page moves the cursor delta rows, stopping at either end of the list
// instead of wrapping. Without a cursor only a forward page does anything,
// and it lands on the first option.
func (m *Model[T]) page(delta int) {
	n := m.cb.Len()
	if n == 0 {
		return
	}
	idx := m.cb.FocusedIndex()
	switch {
	case idx < 0 && delta < 0:
		return
	case idx < 0:
		idx = 0
	default:
		idx = max(0, min(n-1, idx+delta))
	}
	m.cb.FocusOptionAtIndex(idx)
}

func (m *Model[T]) handleClick(x, y int) {
	if !m.contains(x, y) {
		if m.cb.HasFocus() {
			m.log.Debug("click outside, blurring")
			m.cb.Blur()
		}
		return
	}
	if y < InputHeight {
		if x >= m.inputWidth() {
			if !m.cb.HasFocus() {
				m.cb.FocusInput()
			}
			m.toggle.Click()
			return
		}
		m.cb.FocusInput()
		return
	}
	if o := m.optionAt(y); o != nil {
		o.Click()
	}
}

func (m *Model[T]) handleMotion(x, y int) {
	if x < 0 || x >= m.width {
		return
	}
	if o := m.optionAt(y); o != nil && !o.IsFocused() {
		o.MouseEnter()
	}
}

// keyFromMsg translates a key press into the keys the container knows.
// Shift only counts on keys that do not type anything.
func keyFromMsg(msg tea.KeyPressMsg) combobox.Key {
	k := combobox.Key{Shift: msg.Mod&tea.ModShift != 0 && msg.Text == ""}
	switch msg.String() {
	case keys.Escape:
		k.Code = combobox.KeyEscape
	case keys.Space:
		k.Code = combobox.KeySpace
	case keys.Enter:
		k.Code = combobox.KeyEnter
	case keys.Down, keys.CtrlN:
		k.Code = combobox.KeyDown
	case keys.Up, keys.CtrlP:
		k.Code = combobox.KeyUp
	}
	return k
}

func (m *Model[T]) onSelect(value string, o *combobox.Option[T]) {
	m.pending = append(m.pending, SelectedMsg[T]{
		WidgetID: m.id,
		Value:    value,
		Label:    o.Label(),
		Item:     o.Item(),
	})
}

func (m *Model[T]) onInputChange(text string, selected *T) {
	m.pending = append(m.pending, InputChangedMsg[T]{
		WidgetID: m.id,
		Text:     text,
		Selected: selected,
		Typed:    m.typing,
	})
}

// commands brings the text field in line with the container, then turns
// queued host messages and deferred work into commands.
func (m *Model[T]) commands(extra ...tea.Cmd) tea.Cmd {
	cmds := append(extra, m.sync())

	for _, msg := range m.pending {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	m.pending = nil

	if m.cb.Scheduler().Pending() {
		id := m.id
		cmds = append(cmds, func() tea.Msg { return flushMsg{id: id} })
	}
	return tea.Batch(cmds...)
}

func (m *Model[T]) sync() tea.Cmd {
	if m.text.Value() != m.cb.InputText() {
		m.text.SetValue(m.cb.InputText())
	}
	m.text.Placeholder = m.cb.Placeholder()
	m.scrollToFocused()
	return m.syncFocus()
}

func (m *Model[T]) syncFocus() tea.Cmd {
	want := m.input.Focused()
	switch {
	case want && !m.text.Focused():
		return m.text.Focus()
	case !want && m.text.Focused():
		m.text.Blur()
	}
	return nil
}

// scrollToFocused keeps the cursor on screen, but only when it has moved,
// so wheel scrolling is not undone.
func (m *Model[T]) scrollToFocused() {
	idx := m.cb.FocusedIndex()
	if idx == m.lastFocused {
		return
	}
	m.lastFocused = idx
	if idx < 0 {
		return
	}
	if idx < m.offset {
		m.offset = idx
	} else if idx >= m.offset+m.maxVisible {
		m.offset = idx - m.maxVisible + 1
	}
	m.clampOffset()
}

func (m *Model[T]) clampOffset() {
	limit := max(0, m.cb.Len()-m.maxVisible)
	m.offset = min(max(m.offset, 0), limit)
}

func (m *Model[T]) visibleCount() int {
	return max(0, min(m.cb.Len()-m.offset, m.maxVisible))
}

func (m *Model[T]) inputWidth() int {
	return m.width - ToggleWidth
}

func (m *Model[T]) contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.Height()
}

// optionAt returns the option rendered on row y, or nil.
func (m *Model[T]) optionAt(y int) *combobox.Option[T] {
	if !m.cb.IsOpen() {
		return nil
	}
	row := y - InputHeight
	if row < 0 || row >= m.visibleCount() {
		return nil
	}
	opts := m.cb.Options()
	return opts[m.offset+row]
}

// View renders the widget.
func (m *Model[T]) View() string {
	rows := []string{m.inputRow()}
	if m.cb.IsOpen() {
		rows = append(rows, m.listRows()...)
	}
	return strings.Join(rows, "\n")
}

func (m *Model[T]) inputRow() string {
	w := m.inputWidth()
	field := ansi.Truncate(m.text.View(), w, "")
	if pad := w - ansi.StringWidth(field); pad > 0 {
		field += strings.Repeat(" ", pad)
	}

	glyph := GlyphClosed
	if m.cb.IsOpen() {
		glyph = GlyphOpen
	}
	toggle := ToggleStyle
	if m.toggle.Disabled {
		toggle = ToggleDisabledStyle
	}
	return field + " " + toggle.Render(glyph)
}

func (m *Model[T]) listRows() []string {
	n := m.visibleCount()
	if n == 0 {
		return []string{EmptyListStyle.Width(m.width).Render("  no matches")}
	}

	opts := m.cb.Options()[m.offset : m.offset+n]
	rows := make([]string, 0, n)
	for _, o := range opts {
		marker := strings.Repeat(" ", MarkerWidth)
		style := OptionStyle
		if o.IsSelected() {
			marker = GlyphSelected + " "
			style = OptionSelectedStyle
		}
		if o.IsFocused() {
			style = OptionFocusedStyle
		}
		label := runewidth.Truncate(o.Label(), m.width-MarkerWidth, GlyphEllipsis)
		rows = append(rows, style.Width(m.width).Render(marker+label))
	}
	return rows
}
