package combobox

// Option is one selectable row. The rendering list owns it; the container
// only holds a registration, made by Mount and dropped by Unmount.
type Option[T any] struct {
	id       string
	item     T
	combobox *Combobox[T]
	key      string // value at registration time

	selected bool
	focused  bool
	mounted  bool
}

// NewOption creates an option for item. It is inert until mounted.
func NewOption[T any](c *Combobox[T], item T) *Option[T] {
	return &Option[T]{
		id:       newElementID("combobox-option"),
		item:     item,
		combobox: c,
	}
}

// ID is the option's element id, the target of aria-activedescendant.
func (o *Option[T]) ID() string { return o.id }

func (o *Option[T]) elementID() string { return o.id }

// Item returns the host item behind the option.
func (o *Option[T]) Item() T { return o.item }

// Label returns the text shown in the list.
func (o *Option[T]) Label() string { return o.combobox.accessor.Label(o.item) }

// Value returns the value bound to the host when the option is selected.
func (o *Option[T]) Value() string { return o.combobox.accessor.Value(o.item) }

func (o *Option[T]) text() string { return o.combobox.accessor.Text(o.item) }

func (o *Option[T]) IsSelected() bool { return o.selected }

func (o *Option[T]) IsFocused() bool { return o.focused }

// Mounted reports whether the option is registered with its container.
func (o *Option[T]) Mounted() bool { return o.mounted }

// Attributes returns the option element's attributes.
func (o *Option[T]) Attributes() Attributes {
	attrs := Attributes{
		"role":     "option",
		"tabindex": "-1",
	}
	if o.selected {
		attrs["selected"] = "true"
	}
	return attrs
}

// Mount registers the option with its container. Mounting twice is a no-op.
func (o *Option[T]) Mount() {
	if o.mounted {
		return
	}
	o.mounted = true
	o.combobox.RegisterOption(o)
}

// Unmount unregisters the option. Unmounting twice is a no-op.
func (o *Option[T]) Unmount() {
	if !o.mounted {
		return
	}
	o.mounted = false
	o.combobox.RemoveOption(o)
}

// Click selects the option. The click stops here and does not reach the
// container's own handlers.
func (o *Option[T]) Click() {
	if !o.mounted {
		return
	}
	o.combobox.SelectOption(o, SelectOptions{})
}

// MouseEnter moves the navigation cursor onto the option.
func (o *Option[T]) MouseEnter() {
	if !o.mounted {
		return
	}
	o.combobox.FocusOption(o, FocusOptions{})
}

func (o *Option[T]) markSelected() { o.selected = true }

func (o *Option[T]) deselect() { o.selected = false }

func (o *Option[T]) blur() { o.focused = false }

// focus sets the focused flag and, unless opts says otherwise, moves
// keyboard focus onto the option. A closed list is opened first and the
// element is focused after the next render, once it is on screen.
func (o *Option[T]) focus(opts FocusOptions) {
	o.focused = true
	if opts.NoElement {
		return
	}
	c := o.combobox
	if c.isOpen {
		c.moveFocus(o)
		return
	}
	c.Open()
	c.afterRender(o.id, func() {
		if c.visible(o) {
			c.moveFocus(o)
		}
	})
}
