package combobox

import "testing"

type state struct {
	ID   string
	Name string
}

var (
	utah     = state{ID: "UT", Name: "Utah"}
	illinois = state{ID: "IL", Name: "Illinois"}
	ohio     = state{ID: "OH", Name: "Ohio"}
)

type selectCall struct {
	value  string
	option *Option[state]
}

type inputCall struct {
	text     string
	selected *state
}

// recorder captures host callbacks.
type recorder struct {
	selects []selectCall
	inputs  []inputCall
	onSel   func(value string, o *Option[state])
}

type fixture struct {
	c     *Combobox[state]
	input *Input[state]
	rec   *recorder
}

func newFixture(t *testing.T, value string) *fixture {
	t.Helper()
	rec := &recorder{}
	c, err := New(Config[state]{
		Value: value,
		Accessor: Accessor[state]{
			Value: func(s state) string { return s.ID },
			Label: func(s state) string { return s.Name },
		},
		OnSelect: func(v string, o *Option[state]) {
			rec.selects = append(rec.selects, selectCall{v, o})
			if rec.onSel != nil {
				rec.onSel(v, o)
			}
		},
		OnInputChange: func(text string, selected *state) {
			rec.inputs = append(rec.inputs, inputCall{text, selected})
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return &fixture{c: c, input: NewInput(c), rec: rec}
}

// mount creates and mounts an option per item.
func (f *fixture) mount(items ...state) []*Option[state] {
	opts := make([]*Option[state], 0, len(items))
	for _, it := range items {
		o := NewOption(f.c, it)
		o.Mount()
		opts = append(opts, o)
	}
	return opts
}

// checkInvariants fails the test if the registry or the selection/focus
// flags are inconsistent. all holds every option ever created.
func checkInvariants(t *testing.T, c *Combobox[state], all []*Option[state]) {
	t.Helper()

	total := 0
	for v, bucket := range c.options.byValue {
		if len(bucket) == 0 {
			t.Fatalf("empty bucket left for value %q", v)
		}
		total += len(bucket)
		for _, o := range bucket {
			if o.key != v {
				t.Fatalf("option keyed %q filed under %q", o.key, v)
			}
			if !c.options.contains(o) {
				t.Fatalf("indexed option %q missing from order", o.key)
			}
		}
	}
	if total != len(c.options.order) {
		t.Fatalf("index holds %d options, order holds %d", total, len(c.options.order))
	}
	for _, o := range c.options.order {
		n := 0
		for _, b := range c.options.byValue[o.key] {
			if b == o {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("option %q indexed %d times", o.key, n)
		}
	}

	selected, focused := 0, 0
	for _, o := range all {
		if o.IsSelected() {
			selected++
		}
		if o.IsFocused() {
			focused++
		}
	}
	if selected > 1 {
		t.Fatalf("%d options report selected", selected)
	}
	if focused > 1 {
		t.Fatalf("%d options report focused", focused)
	}
	if f := c.FocusedOption(); f != nil && !c.options.contains(f) {
		t.Fatalf("focused option %q is not registered", f.key)
	}
}
