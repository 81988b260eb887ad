// Package ui renders the combobox widget in the terminal.
//
// # Overview
//
// Model wraps a combobox.Combobox together with a bubbles text input and
// follows the Bubble Tea Update/View pattern. The host owns the item list
// and pushes it in with SetItems; the widget reports back through
// SelectedMsg and InputChangedMsg.
//
// # Layout
//
//	┌──────────────────────────────────┬──┐
//	│ text field                       │ ▾│  row 0
//	├──────────────────────────────────┴──┤
//	│ ✓ selected option                   │  rows 1..MaxVisible,
//	│   focused option (highlighted)      │  only while open
//	│   ...                               │
//	└─────────────────────────────────────┘
//
// Mouse coordinates handed to Update must be relative to the widget's
// top-left cell. The host translates them, the same way it translates
// them for any other panel.
//
// # Deferred work
//
// The container defers some work to after the next render or the next
// tick. Whenever work is queued, the command returned from Update carries
// a private message that runs it when it comes back around; hosts only
// need to route every message to the widget.
//
// # Styles
//
// Styles live in styles.go and are rebuilt from the active Theme by
// SetTheme. Header and Footer are the chrome used by the demo program.
package ui
