package combobox

// Input is the widget's text field as the container sees it. The text
// itself lives in the container.
type Input[T any] struct {
	id       string
	combobox *Combobox[T]
}

// NewInput creates the input and registers it with c.
func NewInput[T any](c *Combobox[T]) *Input[T] {
	in := &Input[T]{
		id:       newElementID("combobox-input"),
		combobox: c,
	}
	c.RegisterInput(in)
	return in
}

func (in *Input[T]) ID() string { return in.id }

func (in *Input[T]) elementID() string { return in.id }

// Focus moves keyboard focus to the input.
func (in *Input[T]) Focus() {
	in.combobox.moveFocus(in)
}

// Focused reports whether the input holds keyboard focus.
func (in *Input[T]) Focused() bool {
	return in.combobox.active == focusable(in)
}

// Attributes returns the input element's attributes.
func (in *Input[T]) Attributes() Attributes {
	c := in.combobox
	attrs := Attributes{
		"role":              "combobox",
		"aria-autocomplete": "both",
		"aria-owns":         c.listID,
	}
	if c.focused != nil {
		attrs["aria-activedescendant"] = c.focused.id
	}
	if c.placeholder != "" {
		attrs["placeholder"] = c.placeholder
	}
	return attrs
}

// focusIn closes the list when the user moves focus back to the input. The
// container suppresses this while it is moving focus there itself.
func (in *Input[T]) focusIn() {
	c := in.combobox
	if c.ignoreInputFocus {
		return
	}
	c.Close()
}

func (in *Input[T]) focusOut() {
	in.combobox.AttemptBindOption()
}

// Toggle is the button that opens and closes the list. It is hidden from
// assistive technology and never takes keyboard focus.
type Toggle[T any] struct {
	combobox *Combobox[T]
	Disabled bool
}

// NewToggle creates a toggle for c.
func NewToggle[T any](c *Combobox[T]) *Toggle[T] {
	return &Toggle[T]{combobox: c}
}

// Click flips the list unless the toggle is disabled.
func (t *Toggle[T]) Click() {
	if t.Disabled {
		return
	}
	t.combobox.ToggleVisibility()
}

// Attributes returns the toggle element's attributes.
func (t *Toggle[T]) Attributes() Attributes {
	return Attributes{
		"aria-hidden": "true",
		"tabindex":    "-1",
	}
}
