package combobox

// KeyCode identifies the keys the container reacts to. Everything else is
// KeyOther.
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyDown
	KeyUp
)

// Key is a key press as seen by the container.
type Key struct {
	Code  KeyCode
	Shift bool
}
