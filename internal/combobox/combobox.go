package combobox

import (
	"log/slog"

	"github.com/zhubert/combobox/internal/errors"
	"github.com/zhubert/combobox/internal/logger"
)

// Accessor extracts the fields the container needs from an item.
type Accessor[T any] struct {
	// Value is the key bound to the host's value. Required.
	Value func(T) string
	// Label is what the option row displays. Required.
	Label func(T) string
	// Text is written to the input when the option is selected and is what
	// typed text is compared against on blur. Defaults to Label.
	Text func(T) string
}

// Config configures a new Combobox.
type Config[T any] struct {
	// Value is the initial bound value.
	Value       string
	Placeholder string
	Accessor    Accessor[T]

	// OnSelect runs whenever a selection completes, with the option's value.
	OnSelect func(value string, option *Option[T])
	// OnInputChange runs whenever the input text changes, typed or set by a
	// selection. selected is nil while nothing is selected.
	OnInputChange func(text string, selected *T)

	// Scheduler receives deferred work. A private one is created when nil.
	Scheduler *Scheduler
}

// SelectOptions adjusts SelectOption. The zero value closes the list,
// focuses the input and focuses the option.
type SelectOptions struct {
	KeepOpen      bool
	NoFocus       bool
	NoFocusOption bool
}

// FocusOptions adjusts FocusOption. NoElement tracks the option as the
// navigation cursor without moving keyboard focus onto it.
type FocusOptions struct {
	NoElement bool
}

// focusable is an element of the widget that can hold keyboard focus.
type focusable interface {
	elementID() string
}

// Combobox is the coordinating container of the widget.
type Combobox[T any] struct {
	id     string
	listID string

	accessor    Accessor[T]
	placeholder string

	options *registry[T]

	selected  *Option[T]
	value     string
	inputText string
	selecting bool

	focused          *Option[T]
	isOpen           bool
	ignoreInputFocus bool

	input  *Input[T]
	active focusable

	onSelect      func(string, *Option[T])
	onInputChange func(string, *T)

	sched     *Scheduler
	destroyed bool
	log       *slog.Logger
}

// New creates a container. The value and label accessors are required.
func New[T any](cfg Config[T]) (*Combobox[T], error) {
	if cfg.Accessor.Value == nil {
		return nil, errors.AccessorMissing("value")
	}
	if cfg.Accessor.Label == nil {
		return nil, errors.AccessorMissing("label")
	}
	if cfg.Accessor.Text == nil {
		cfg.Accessor.Text = cfg.Accessor.Label
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = NewScheduler()
	}

	c := &Combobox[T]{
		id:            newElementID("combobox"),
		listID:        newElementID("combobox-list"),
		accessor:      cfg.Accessor,
		placeholder:   cfg.Placeholder,
		options:       newRegistry[T](),
		value:         cfg.Value,
		onSelect:      cfg.OnSelect,
		onInputChange: cfg.OnInputChange,
		sched:         sched,
	}
	c.log = logger.WithWidget("Combobox", c.id)

	// Until a matching option shows up the raw value is the best text we have.
	if cfg.Value != "" {
		c.inputText = cfg.Value
	}
	return c, nil
}

// ID identifies the widget instance.
func (c *Combobox[T]) ID() string { return c.id }

// ListID is the element id of the option list, the target of aria-owns.
func (c *Combobox[T]) ListID() string { return c.listID }

func (c *Combobox[T]) Placeholder() string { return c.placeholder }

func (c *Combobox[T]) SetPlaceholder(p string) { c.placeholder = p }

func (c *Combobox[T]) IsOpen() bool { return c.isOpen }

// Selected returns the selected option, or nil.
func (c *Combobox[T]) Selected() *Option[T] { return c.selected }

// Value returns the bound value.
func (c *Combobox[T]) Value() string { return c.value }

// InputText returns the text currently in the input.
func (c *Combobox[T]) InputText() string { return c.inputText }

// FocusedOption returns the keyboard-navigation cursor, or nil.
func (c *Combobox[T]) FocusedOption() *Option[T] { return c.focused }

// FocusedIndex returns the position of the focused option in the list, or
// -1 when there is none.
func (c *Combobox[T]) FocusedIndex() int { return c.options.indexOf(c.focused) }

// Options returns the registered options in navigation order.
func (c *Combobox[T]) Options() []*Option[T] {
	out := make([]*Option[T], len(c.options.order))
	copy(out, c.options.order)
	return out
}

// Len returns the number of registered options.
func (c *Combobox[T]) Len() int { return c.options.len() }

// Scheduler returns the queue holding the container's deferred work.
func (c *Combobox[T]) Scheduler() *Scheduler { return c.sched }

// Destroyed reports whether Destroy has run.
func (c *Combobox[T]) Destroyed() bool { return c.destroyed }

// HasFocus reports whether keyboard focus is anywhere inside the widget.
func (c *Combobox[T]) HasFocus() bool { return c.active != nil }

// ActiveOption returns the option holding keyboard focus, or nil.
func (c *Combobox[T]) ActiveOption() *Option[T] {
	o, _ := c.active.(*Option[T])
	return o
}

// Attributes returns the container element's attributes.
func (c *Combobox[T]) Attributes() Attributes {
	attrs := Attributes{}
	if c.isOpen {
		attrs["is-open"] = "true"
	}
	return attrs
}

// Open shows the list. It does nothing when the list is already open.
func (c *Combobox[T]) Open() {
	if c.destroyed || c.isOpen {
		return
	}
	c.isOpen = true
	c.log.Debug("list opened")
}

// Close hides the list. It does nothing when the list is already closed.
//
// The navigation cursor moves back to the selected option so the next
// arrow key starts from the selection. If focus was inside the widget it
// lands on the input without that focus reopening anything.
func (c *Combobox[T]) Close() {
	if c.destroyed || !c.isOpen {
		return
	}
	c.isOpen = false
	if c.focused != nil {
		c.focused.blur()
		c.focused = nil
		if c.options.contains(c.selected) {
			c.focused = c.selected
		}
	}
	if c.active != nil && c.input != nil {
		c.ignoreInputFocus = true
		c.later(func() { c.ignoreInputFocus = false })
		c.input.Focus()
	}
	c.log.Debug("list closed")
}

// ToggleVisibility opens a closed list and closes an open one.
func (c *Combobox[T]) ToggleVisibility() {
	if c.isOpen {
		c.Close()
	} else {
		c.Open()
	}
}

// RegisterInput records the text field the container commands focus on.
func (c *Combobox[T]) RegisterInput(in *Input[T]) {
	c.input = in
}

// RegisterOption adds o to the end of the list. An option whose value is
// the bound value becomes the selection: quietly when something is already
// selected (a host rebuilding its list must not trigger another round of
// callbacks), otherwise through a full selection that leaves focus alone.
func (c *Combobox[T]) RegisterOption(o *Option[T]) {
	if c.destroyed || o == nil || c.options.contains(o) {
		return
	}
	c.options.add(o)
	c.log.Debug("option registered", "value", o.key, "count", c.options.len())

	if c.value == "" || o.key != c.value {
		return
	}
	if c.selected != nil || c.selecting {
		c.selectWithoutRecursion(o)
		return
	}
	c.SelectOption(o, SelectOptions{NoFocus: true})
}

// RemoveOption drops o from the list. A focused option is not replaced:
// the cursor becomes empty.
func (c *Combobox[T]) RemoveOption(o *Option[T]) {
	if !c.options.remove(o) {
		return
	}
	if c.focused == o {
		o.blur()
		c.focused = nil
	}
	// The element holding focus is going away; focus returns to the input
	// without firing handlers, as nothing left the widget.
	if c.active == focusable(o) {
		c.active = nil
		if c.input != nil {
			c.active = c.input
		}
	}
	c.log.Debug("option removed", "value", o.key, "count", c.options.len())
}

// SelectOption makes o the selection.
func (c *Combobox[T]) SelectOption(o *Option[T], opts SelectOptions) {
	if c.destroyed || o == nil {
		return
	}
	// A host callback selecting again mid-selection gets the quiet path.
	if c.selecting {
		c.selectWithoutRecursion(o)
		return
	}
	c.selecting = true
	defer func() { c.selecting = false }()

	if c.selected != nil {
		c.selected.deselect()
	}
	o.markSelected()
	c.setSelected(o)
	c.setInputText(o.text())
	c.FocusOption(o, FocusOptions{NoElement: opts.NoFocusOption})
	if !opts.NoFocus && c.input != nil {
		c.input.Focus()
	}
	if !opts.KeepOpen {
		c.Close()
	}
	c.log.Debug("option selected", "value", c.value)

	c.selecting = false
	if c.onSelect != nil {
		c.onSelect(o.Value(), o)
	}
}

// selectWithoutRecursion moves the selection to o without touching the
// input text, keyboard focus or host callbacks.
func (c *Combobox[T]) selectWithoutRecursion(o *Option[T]) {
	if c.selected != nil && c.selected != o {
		c.selected.deselect()
	}
	o.markSelected()
	c.setSelected(o)
	c.FocusOption(o, FocusOptions{NoElement: true})
	c.log.Debug("selection carried over", "value", c.value)
}

// setSelected keeps value in step with the selection.
func (c *Combobox[T]) setSelected(o *Option[T]) {
	c.selected = o
	if o != nil {
		c.value = o.Value()
	}
}

// SetValue binds a new value from the host. A registered option with that
// value is selected on the next tick; an unknown value leaves the
// selection alone.
func (c *Combobox[T]) SetValue(v string) {
	if c.destroyed || v == c.value {
		return
	}
	c.value = v
	c.bindValue()
}

func (c *Combobox[T]) bindValue() {
	if c.selected == nil && c.value == "" {
		return
	}
	if c.selected != nil && c.selected.Value() == c.value {
		return
	}
	o := c.options.lookup(c.value)
	if o == nil {
		c.log.Debug("no option for value", "value", c.value)
		return
	}
	c.later(func() {
		// The list or the value may have moved on since.
		if !c.options.contains(o) || o.Value() != c.value || c.selected == o {
			return
		}
		c.SelectOption(o, SelectOptions{})
	})
}

// SetInputText records typed text.
func (c *Combobox[T]) SetInputText(text string) {
	if c.destroyed {
		return
	}
	c.setInputText(text)
}

func (c *Combobox[T]) setInputText(text string) {
	if text == c.inputText {
		return
	}
	c.inputText = text
	if c.onInputChange == nil {
		return
	}
	var item *T
	if c.selected != nil {
		it := c.selected.item
		item = &it
	}
	c.onInputChange(text, item)
}

// FocusNext moves the cursor down. On a closed list the first press only
// reveals where the cursor already is.
func (c *Combobox[T]) FocusNext() {
	index := 0
	if c.focused != nil {
		index = c.options.indexOf(c.focused)
		if c.isOpen {
			index++
		}
	}
	c.FocusOptionAtIndex(index)
}

// FocusPrevious moves the cursor up, with the same closed-list rule as
// FocusNext. Without a cursor it does nothing.
func (c *Combobox[T]) FocusPrevious() {
	if c.focused == nil {
		return
	}
	index := c.options.indexOf(c.focused)
	if c.isOpen {
		index--
	}
	c.FocusOptionAtIndex(index)
}

// FocusOptionAtIndex focuses the option at index, wrapping one step past
// either end.
func (c *Combobox[T]) FocusOptionAtIndex(index int) {
	n := c.options.len()
	if index < 0 {
		index = n - 1
	} else if index == n {
		index = 0
	}
	o := c.options.at(index)
	if o == nil {
		return
	}
	c.FocusOption(o, FocusOptions{})
}

// FocusOption makes o the navigation cursor.
func (c *Combobox[T]) FocusOption(o *Option[T], opts FocusOptions) {
	if c.destroyed || o == nil {
		return
	}
	if c.focused != nil {
		c.focused.blur()
	}
	c.focused = o
	o.focus(opts)
}

// maybeSelectFocusedOption reports whether there was an option to select.
func (c *Combobox[T]) maybeSelectFocusedOption() bool {
	if c.focused == nil {
		return false
	}
	c.SelectOption(c.focused, SelectOptions{})
	return true
}

// HandleKey dispatches a key press from anywhere in the widget and reports
// whether the key was consumed. Unconsumed keys belong to the input.
func (c *Combobox[T]) HandleKey(k Key) bool {
	if c.destroyed {
		return false
	}
	switch k.Code {
	case KeyEscape:
		c.Close()
		return true
	case KeySpace:
		return c.maybeSelectFocusedOption()
	case KeyEnter:
		c.maybeSelectFocusedOption()
		return true
	case KeyDown:
		c.FocusNext()
		return true
	case KeyUp:
		c.FocusPrevious()
		return true
	}
	// Shift is left alone so shift+tab can leave the widget.
	if k.Shift {
		return false
	}
	if c.input != nil && !c.input.Focused() {
		c.input.Focus()
	}
	return false
}

// AttemptBindOption commits typed text when it names exactly one option.
// It only acts while the list is closed; ambiguous text stays as typed.
func (c *Combobox[T]) AttemptBindOption() {
	if c.destroyed || c.isOpen {
		return
	}
	var match *Option[T]
	for _, o := range c.options.order {
		if o.text() != c.inputText {
			continue
		}
		if match != nil {
			c.log.Debug("blur commit ambiguous", "text", c.inputText)
			return
		}
		match = o
	}
	if match == nil || match == c.selected {
		return
	}
	// Focus is on its way out of the input; do not pull it back.
	c.SelectOption(match, SelectOptions{NoFocus: true, NoFocusOption: true})
}

// FocusInput moves keyboard focus into the widget's input.
func (c *Combobox[T]) FocusInput() {
	if c.input != nil {
		c.input.Focus()
	}
}

// Blur moves keyboard focus out of the widget.
func (c *Combobox[T]) Blur() {
	c.moveFocus(nil)
}

// moveFocus hands keyboard focus to target (nil means outside the widget)
// and fires the focus handlers: the element losing focus, then the widget,
// then the element gaining focus.
func (c *Combobox[T]) moveFocus(target focusable) {
	if c.destroyed {
		return
	}
	from := c.active
	if from == target {
		return
	}
	c.active = target

	if c.input != nil && from == focusable(c.input) {
		c.input.focusOut()
	}
	if from != nil {
		c.focusOut()
	}
	if c.input != nil && target == focusable(c.input) && c.active == target {
		c.input.focusIn()
	}
}

// focusOut closes the list once focus has settled outside the widget.
func (c *Combobox[T]) focusOut() {
	c.later(func() {
		if c.active == nil {
			c.Close()
		}
	})
}

// visible reports whether o is on screen and can take focus.
func (c *Combobox[T]) visible(o *Option[T]) bool {
	return c.isOpen && c.options.contains(o)
}

// later queues fn for the next tick unless the container is destroyed by then.
func (c *Combobox[T]) later(fn func()) {
	c.sched.Defer(func() {
		if c.destroyed {
			return
		}
		fn()
	})
}

func (c *Combobox[T]) afterRender(key string, fn func()) {
	c.sched.AfterRender(key, func() {
		if c.destroyed {
			return
		}
		fn()
	})
}

// Destroy tears the widget down. Pending deferred work becomes a no-op.
func (c *Combobox[T]) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.options.clear()
	c.focused = nil
	c.active = nil
	c.log.Debug("destroyed")
}
