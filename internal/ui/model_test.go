package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/combobox/internal/combobox"
)

type state struct {
	ID   string
	Name string
}

var states = []state{
	{ID: "CA", Name: "California"},
	{ID: "IL", Name: "Illinois"},
	{ID: "OH", Name: "Ohio"},
	{ID: "UT", Name: "Utah"},
	{ID: "WA", Name: "Washington"},
}

var stateAccessor = combobox.Accessor[state]{
	Value: func(s state) string { return s.ID },
	Label: func(s state) string { return s.Name },
}

func newTestModel(t *testing.T, cfg Config[state]) *Model[state] {
	t.Helper()
	cfg.Accessor = stateAccessor
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(m.Destroy)
	return m
}

// run executes cmd the way the Bubble Tea runtime would: batches are
// expanded, the widget's own messages are fed back into Update, and
// everything else is returned for the host. Commands that do not return
// promptly (cursor blink ticks) are dropped.
func run(t *testing.T, m *Model[state], cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := execWithTimeout(next, 50*time.Millisecond)
		if !ok || msg == nil {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case flushMsg:
			_, c := m.Update(msg)
			queue = append(queue, c)
		default:
			out = append(out, msg)
		}
	}
	return out
}

func execWithTimeout(cmd tea.Cmd, d time.Duration) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(d):
		return nil, false
	}
}

func send(t *testing.T, m *Model[state], msg tea.Msg) []tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	return run(t, m, cmd)
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func selections(msgs []tea.Msg) []SelectedMsg[state] {
	var out []SelectedMsg[state]
	for _, msg := range msgs {
		if sel, ok := msg.(SelectedMsg[state]); ok {
			out = append(out, sel)
		}
	}
	return out
}

func inputChanges(msgs []tea.Msg) []InputChangedMsg[state] {
	var out []InputChangedMsg[state]
	for _, msg := range msgs {
		if ch, ok := msg.(InputChangedMsg[state]); ok {
			out = append(out, ch)
		}
	}
	return out
}

func plainView(m *Model[state]) string {
	return ansi.Strip(m.View())
}

func TestNew_RequiresAccessor(t *testing.T) {
	if _, err := New(Config[state]{}); err == nil {
		t.Error("expected error for missing accessor")
	}
}

func TestNew_Defaults(t *testing.T) {
	m := newTestModel(t, Config[state]{Placeholder: "Pick a state"})

	if m.Width() != DefaultWidth {
		t.Errorf("expected default width %d, got %d", DefaultWidth, m.Width())
	}
	if m.maxVisible != DefaultMaxVisible {
		t.Errorf("expected default max visible %d, got %d", DefaultMaxVisible, m.maxVisible)
	}
	if m.Focused() || m.IsOpen() {
		t.Error("new widget should be closed and unfocused")
	}
	if m.Height() != InputHeight {
		t.Errorf("expected closed height %d, got %d", InputHeight, m.Height())
	}
	if m.ID() == "" || m.ID() != m.Combobox().ID() {
		t.Errorf("unexpected widget id %q", m.ID())
	}
}

func TestSetWidth_Minimum(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	m.SetWidth(3)
	if m.Width() != MinWidth {
		t.Errorf("expected width clamped to %d, got %d", MinWidth, m.Width())
	}
}

func TestSetItems_SelectsInitialValue(t *testing.T) {
	m := newTestModel(t, Config[state]{Value: "UT"})

	if m.InputText() != "UT" {
		t.Errorf("expected raw value as initial text, got %q", m.InputText())
	}

	msgs := run(t, m, m.SetItems(states))

	sels := selections(msgs)
	if len(sels) != 1 || sels[0].Value != "UT" || sels[0].Label != "Utah" {
		t.Fatalf("expected one selection of UT, got %+v", sels)
	}
	if m.InputText() != "Utah" || m.text.Value() != "Utah" {
		t.Errorf("expected input text Utah, got core=%q field=%q", m.InputText(), m.text.Value())
	}
	if item, ok := m.Selected(); !ok || item.ID != "UT" {
		t.Errorf("expected Utah selected, got %+v (%v)", item, ok)
	}
	if m.Focused() {
		t.Error("initial selection must not take focus")
	}

	changes := inputChanges(msgs)
	if len(changes) != 1 || changes[0].Typed {
		t.Errorf("expected one untyped input change, got %+v", changes)
	}
}

func TestSetItems_RebuildKeepsSelection(t *testing.T) {
	m := newTestModel(t, Config[state]{Value: "IL"})
	run(t, m, m.SetItems(states))

	msgs := run(t, m, m.SetItems(states[1:3]))

	if len(selections(msgs)) != 0 {
		t.Error("rebuilding the list must not report a new selection")
	}
	if item, ok := m.Selected(); !ok || item.ID != "IL" {
		t.Errorf("expected Illinois to stay selected, got %+v", item)
	}
	if m.Combobox().Len() != 2 {
		t.Errorf("expected 2 options after rebuild, got %d", m.Combobox().Len())
	}
}

func TestKeyboard_OpenNavigateSelect(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())

	if !m.Focused() || !m.text.Focused() {
		t.Fatal("expected focus in the text field")
	}

	send(t, m, press(tea.KeyDown))
	if !m.IsOpen() {
		t.Fatal("expected down to open the list")
	}
	if got := m.Combobox().FocusedIndex(); got != 0 {
		t.Errorf("expected cursor on first option, got %d", got)
	}
	if m.text.Focused() {
		t.Error("text field should give up focus to the option")
	}
	if m.Height() != InputHeight+len(states) {
		t.Errorf("expected height %d, got %d", InputHeight+len(states), m.Height())
	}

	send(t, m, press(tea.KeyDown))
	msgs := send(t, m, press(tea.KeyEnter))

	sels := selections(msgs)
	if len(sels) != 1 || sels[0].Value != "IL" {
		t.Fatalf("expected Illinois selected, got %+v", sels)
	}
	if m.IsOpen() {
		t.Error("selection should close the list")
	}
	if !m.text.Focused() {
		t.Error("selection should return focus to the text field")
	}
	if !strings.Contains(plainView(m), "Illinois") {
		t.Errorf("expected field to show Illinois, got %q", plainView(m))
	}
}

func TestKeyboard_CtrlNAndCtrlP(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())

	send(t, m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	send(t, m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	send(t, m, tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})

	if got := m.Combobox().FocusedIndex(); got != 0 {
		t.Errorf("expected cursor back on first option, got %d", got)
	}
}

func TestKeyboard_PageKeys(t *testing.T) {
	m := newTestModel(t, Config[state]{MaxVisible: 2})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())

	send(t, m, press(tea.KeyPgUp))
	if m.IsOpen() || m.Combobox().FocusedIndex() != -1 {
		t.Error("pgup without a cursor should do nothing")
	}

	steps := []struct {
		code rune
		want int
	}{
		{tea.KeyPgDown, 0},
		{tea.KeyPgDown, 2},
		{tea.KeyPgDown, 4},
		{tea.KeyPgDown, 4},
		{tea.KeyPgUp, 2},
		{tea.KeyPgUp, 0},
		{tea.KeyPgUp, 0},
	}
	for i, step := range steps {
		send(t, m, press(step.code))
		if got := m.Combobox().FocusedIndex(); got != step.want {
			t.Errorf("step %d: cursor at %d, want %d", i, got, step.want)
		}
		if step.want == 4 && m.offset != 3 {
			t.Errorf("step %d: offset %d, want 3", i, m.offset)
		}
	}
	if !m.IsOpen() {
		t.Error("paging should open the list")
	}
	if m.offset != 0 {
		t.Errorf("expected the window back at the top, got offset %d", m.offset)
	}
}

func TestKeyboard_EscapeCloses(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())
	send(t, m, press(tea.KeyDown))

	send(t, m, press(tea.KeyEscape))

	if m.IsOpen() {
		t.Error("escape should close the list")
	}
	if !m.text.Focused() {
		t.Error("escape should leave focus in the text field")
	}
}

func TestKeyboard_IgnoredWithoutFocus(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))

	send(t, m, press(tea.KeyDown))
	send(t, m, typeRune('x'))

	if m.IsOpen() || m.InputText() != "" {
		t.Error("keys must be ignored while the widget is not focused")
	}
}

func TestTyping_EmitsInputChanged(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())

	send(t, m, typeRune('o'))
	msgs := send(t, m, typeRune('h'))

	changes := inputChanges(msgs)
	if len(changes) != 1 {
		t.Fatalf("expected one input change, got %d", len(changes))
	}
	if changes[0].Text != "oh" || !changes[0].Typed || changes[0].Selected != nil {
		t.Errorf("unexpected change %+v", changes[0])
	}
	if m.InputText() != "oh" {
		t.Errorf("expected core text oh, got %q", m.InputText())
	}
}

func TestTyping_FromOptionReturnsToField(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())
	send(t, m, press(tea.KeyDown))

	send(t, m, typeRune('w'))

	if !m.text.Focused() {
		t.Error("typing should move focus back to the field")
	}
	if m.InputText() != "w" {
		t.Errorf("expected typed text w, got %q", m.InputText())
	}
	if m.IsOpen() {
		t.Error("focus returning to the field closes the list")
	}
}

func TestBlurCommitsTypedText(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())
	for _, r := range "Ohio" {
		send(t, m, typeRune(r))
	}

	msgs := run(t, m, m.Blur())

	sels := selections(msgs)
	if len(sels) != 1 || sels[0].Value != "OH" {
		t.Fatalf("expected Ohio committed on blur, got %+v", sels)
	}
	if m.Focused() {
		t.Error("blur commit must not pull focus back")
	}
}

func TestCtrlT_Toggle(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())

	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if !m.IsOpen() {
		t.Fatal("ctrl+t should open the list")
	}
	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if m.IsOpen() {
		t.Error("ctrl+t should close the list")
	}

	m.SetToggleDisabled(true)
	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if m.IsOpen() {
		t.Error("disabled toggle must not open the list")
	}
}

func TestMouse_ToggleAndOptionClick(t *testing.T) {
	m := newTestModel(t, Config[state]{Width: 30})
	run(t, m, m.SetItems(states))

	send(t, m, click(29, 0))
	if !m.IsOpen() || !m.Focused() {
		t.Fatal("toggle click should focus the widget and open the list")
	}

	msgs := send(t, m, click(5, 3))

	sels := selections(msgs)
	if len(sels) != 1 || sels[0].Value != "OH" {
		t.Fatalf("expected Ohio from the third row, got %+v", sels)
	}
	if m.IsOpen() {
		t.Error("option click should close the list")
	}
}

func TestMouse_ClickFieldFocuses(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))

	send(t, m, click(1, 0))

	if !m.Focused() || !m.text.Focused() {
		t.Error("clicking the field should focus it")
	}
	if m.IsOpen() {
		t.Error("clicking the field should not open the list")
	}
}

func TestMouse_ClickOutsideBlurs(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())
	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})

	send(t, m, click(5, 40))

	if m.Focused() {
		t.Error("click outside should blur the widget")
	}
	if m.IsOpen() {
		t.Error("list should close once focus has left")
	}
}

func TestMouse_HoverMovesCursor(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())
	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})

	send(t, m, tea.MouseMotionMsg{X: 3, Y: 4})

	if got := m.Combobox().FocusedIndex(); got != 3 {
		t.Errorf("expected hover to focus the fourth option, got %d", got)
	}
}

func TestMouse_IgnoresOtherButtons(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))

	send(t, m, tea.MouseClickMsg{X: 1, Y: 0, Button: tea.MouseRight})

	if m.Focused() {
		t.Error("right click should be ignored")
	}
}

func TestScroll_FollowsCursor(t *testing.T) {
	m := newTestModel(t, Config[state]{MaxVisible: 2})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())

	for range 4 {
		send(t, m, press(tea.KeyDown))
	}

	if m.offset != 2 {
		t.Errorf("expected offset 2, got %d", m.offset)
	}
	view := plainView(m)
	if !strings.Contains(view, "Utah") || strings.Contains(view, "California") {
		t.Errorf("unexpected visible rows:\n%s", view)
	}
	if m.Height() != InputHeight+2 {
		t.Errorf("expected height %d, got %d", InputHeight+2, m.Height())
	}
}

func TestScroll_Wheel(t *testing.T) {
	m := newTestModel(t, Config[state]{MaxVisible: 2})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())
	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})

	for range 10 {
		send(t, m, tea.MouseWheelMsg{X: 1, Y: 1, Button: tea.MouseWheelDown})
	}
	if m.offset != len(states)-2 {
		t.Errorf("expected offset clamped to %d, got %d", len(states)-2, m.offset)
	}

	send(t, m, tea.MouseWheelMsg{X: 1, Y: 1, Button: tea.MouseWheelUp})
	if m.offset != len(states)-3 {
		t.Errorf("expected offset %d, got %d", len(states)-3, m.offset)
	}
}

func TestView_EmptyList(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.Focus())
	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})

	if !strings.Contains(plainView(m), "no matches") {
		t.Errorf("expected empty-list row, got %q", plainView(m))
	}
	if m.Height() != InputHeight+1 {
		t.Errorf("expected height %d, got %d", InputHeight+1, m.Height())
	}
}

func TestView_MarksSelectionAndTruncates(t *testing.T) {
	m := newTestModel(t, Config[state]{Value: "WA", Width: MinWidth})
	run(t, m, m.SetItems(states))
	run(t, m, m.Focus())
	send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})

	view := plainView(m)
	if !strings.Contains(view, GlyphSelected+" Washing"+GlyphEllipsis) {
		t.Errorf("expected truncated, marked selection in view:\n%s", view)
	}
	if !strings.Contains(view, GlyphOpen) {
		t.Errorf("expected open glyph in view:\n%s", view)
	}
	for i, line := range strings.Split(view, "\n") {
		if w := ansi.StringWidth(line); w > MinWidth {
			t.Errorf("line %d is %d cells wide, want at most %d", i, w, MinWidth)
		}
	}
}

func TestView_InputRowWidth(t *testing.T) {
	m := newTestModel(t, Config[state]{Value: "UT", Width: 30})
	run(t, m, m.SetItems(states))

	want := "Utah" + strings.Repeat(" ", 24) + " " + GlyphClosed
	check := func(name string) {
		t.Helper()
		row := strings.Split(m.View(), "\n")[0]
		if w := ansi.StringWidth(row); w != 30 {
			t.Errorf("%s: input row is %d cells wide, want 30: %q", name, w, row)
		}
		if got := ansi.Strip(row); got != want {
			t.Errorf("%s: input row = %q, want %q", name, got, want)
		}
	}

	check("blurred")
	run(t, m, m.Focus())
	if !m.text.Focused() {
		t.Fatal("text field should be focused")
	}
	check("focused")

	// Typing past the field keeps the row inside the widget
	for _, r := range "abcdefghijklmnopqrstuvwxyz0123456789" {
		send(t, m, typeRune(r))
	}
	row := strings.Split(m.View(), "\n")[0]
	if w := ansi.StringWidth(row); w != 30 {
		t.Errorf("input row after typing is %d cells wide, want 30", w)
	}
}

func TestFlushMsg_OtherWidgetIgnored(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	m.Combobox().Scheduler().Defer(func() {})

	_, cmd := m.Update(flushMsg{id: "someone-else"})

	if cmd != nil {
		t.Error("expected no command for another widget's flush")
	}
	if !m.Combobox().Scheduler().Pending() {
		t.Error("another widget's flush must not run our work")
	}
}

func TestSetValue_SelectsAfterFlush(t *testing.T) {
	m := newTestModel(t, Config[state]{})
	run(t, m, m.SetItems(states))

	cmd := m.SetValue("CA")
	if _, ok := m.Selected(); ok {
		t.Error("selection should wait for the deferred flush")
	}
	msgs := run(t, m, cmd)

	if sels := selections(msgs); len(sels) != 1 || sels[0].Value != "CA" {
		t.Errorf("expected California selected, got %+v", sels)
	}
	if m.InputText() != "California" {
		t.Errorf("expected input text California, got %q", m.InputText())
	}
}

func TestKeyFromMsg(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.KeyPressMsg
		code  combobox.KeyCode
		shift bool
	}{
		{"escape", tea.KeyPressMsg{Code: tea.KeyEscape}, combobox.KeyEscape, false},
		{"space", tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, combobox.KeySpace, false},
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter}, combobox.KeyEnter, false},
		{"down", tea.KeyPressMsg{Code: tea.KeyDown}, combobox.KeyDown, false},
		{"up", tea.KeyPressMsg{Code: tea.KeyUp}, combobox.KeyUp, false},
		{"ctrl+n", tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}, combobox.KeyDown, false},
		{"letter", tea.KeyPressMsg{Code: 'a', Text: "a"}, combobox.KeyOther, false},
		{"shift+tab", tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, combobox.KeyOther, true},
		{"capital letter", tea.KeyPressMsg{Code: 'a', Text: "A", Mod: tea.ModShift}, combobox.KeyOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := keyFromMsg(tt.msg)
			if k.Code != tt.code || k.Shift != tt.shift {
				t.Errorf("keyFromMsg(%q) = %+v, want code %v shift %v", tt.msg.String(), k, tt.code, tt.shift)
			}
		})
	}
}
