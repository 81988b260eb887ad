// Package combobox implements the state machine behind an autocomplete
// select widget: a text input, a toggle, and a list of options coordinated
// by a single container.
//
// # Components
//
// Combobox: the container. It owns the option registry, the selection, the
// open/closed flag, the keyboard-navigation cursor and the binding between
// the host's value and the selected option. It is the only component that
// mutates shared state.
//
// Option: one selectable row. It keeps its own selected/focused flags and
// reports user intents (click, hover) to the container. Options register on
// Mount and unregister on Unmount.
//
// Input: the text field. Focus-in closes the list unless the container is
// moving focus itself; focus-out attempts to commit typed text.
//
// Toggle: a button that flips the list open or closed.
//
// # Focus
//
// The package tracks which element inside the widget holds keyboard focus
// (the input, an option, or nothing when focus is elsewhere on screen) and
// fires the same focus-in/focus-out handlers a browser would, in the same
// order: the element losing focus first, then the widget, then the element
// gaining focus.
//
// # Deferred work
//
// Some reactions must not run inside the event that caused them. A
// Scheduler holds them in two phases: after-render tasks (focusing an
// option that only becomes visible once the opened list is drawn) and
// next-tick tasks (checking where focus settled, clearing one-shot guards).
// The host flushes the scheduler once per frame. A destroyed container
// drops its pending tasks.
package combobox
