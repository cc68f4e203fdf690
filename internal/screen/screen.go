// Package screen adapts tcell to the terminal capability set the
// query event loop needs: cursor and region primitives, style toggles,
// a raw-mode key reader with bounded and non-blocking waits, and
// multi-byte character width helpers.
package screen

import "time"

// Style selects one of the handful of display styles the query UI
// switches between.
type Style int

const (
	StyleNormal Style = iota
	StyleInvert
	StyleSelect
	StyleDeselect
)

// KeyEvent is one terminal input event: a key press, a paste, or a
// resize notification.
type KeyEvent struct {
	Rune    rune
	Name    string // symbolic name for non-rune keys, e.g. "Up", "PgDn", "F1"
	Ctrl    bool
	Alt     bool
	Shift   bool
	Resize  bool
	Width   int
	Height  int
	Nothing bool // true when In/Poll timed out with no event
}

// Screen is the terminal capability contract the event loop and
// renderer depend on. Screen.In/Poll fetches raw key events;
// everything else paints.
type Screen interface {
	// Cols and Rows report the current terminal size.
	Cols() int
	Rows() int

	// Put writes text at the given row/column in the current style.
	Put(row, col int, text string)
	// SetPos moves the cursor without writing.
	SetPos(row, col int)

	Clear()
	Home()
	End()
	// Erase clears from the cursor to the end of the current line.
	Erase()

	Save()
	Restore()

	SetStyle(Style)
	Normal()
	Invert()
	Select()
	Deselect()

	// PanUp and PanDown hint that the visible region shifted by n rows;
	// implementations that cannot scroll natively may treat this as a
	// no-op and rely on a full repaint instead.
	PanUp(n int)
	PanDown(n int)

	Mono() bool
	SetMono(bool)

	// Alert rings the terminal bell.
	Alert()

	// Show flushes pending writes to the terminal.
	Show()

	// Suspend and Resume release and reacquire the terminal, used
	// around launching an external editor as a foreground process.
	Suspend() error
	Resume() error

	// In blocks up to timeout for the next key event. A timeout of zero
	// or less blocks indefinitely.
	In(timeout time.Duration) KeyEvent
	// Poll returns immediately with the next queued key event, if any.
	Poll() (KeyEvent, bool)

	Close()
}
