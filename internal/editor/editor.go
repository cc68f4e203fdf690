// Package editor implements the single-line query edit buffer: insert,
// erase, cursor motion with double-width-glyph snapping, horizontal
// panning, and error-underline rendering.
package editor

import "github.com/mattn/go-runewidth"

// Capacity bounds the edit line to a fixed number of runes, mirroring
// the fixed-size line buffer of the original query editor.
const Capacity = 4096

// Editor holds one editable line plus cursor and pan state.
type Editor struct {
	Line []rune

	// Col is the cursor's display column (not a rune index: double-
	// width runes occupy two columns).
	Col int

	// Offset is the display column of the leftmost visible rune.
	Offset int

	// Shift is the pan margin recomputed from the terminal width.
	Shift int

	// ErrorCol is the rune index to underline, or -1 when none.
	ErrorCol int

	// Updated is set by any mutation and cleared by the event loop once
	// it has relaunched the search for the new query text.
	Updated bool

	// Overflowed is set when the last Insert call was truncated because
	// the line reached Capacity.
	Overflowed bool
}

// New creates an empty editor.
func New() *Editor {
	return &Editor{ErrorCol: -1, Shift: 8}
}

// Text returns the current line as a string.
func (e *Editor) Text() string {
	return string(e.Line)
}

// SetText replaces the line and resets the cursor to its end.
func (e *Editor) SetText(s string) {
	e.Line = []rune(s)
	e.Col = e.width(len(e.Line))
	e.Offset = 0
	e.ErrorCol = -1
}

func runeWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}

// width returns the total display width of the first n runes of Line.
func (e *Editor) width(n int) int {
	total := 0
	for i := 0; i < n && i < len(e.Line); i++ {
		total += runeWidth(e.Line[i])
	}
	return total
}

// totalWidth returns the display width of the whole line.
func (e *Editor) totalWidth() int {
	return e.width(len(e.Line))
}

// indexAtCol returns the rune index whose display span contains col,
// snapping to the start of a double-width glyph when col lands on its
// second column.
func (e *Editor) indexAtCol(col int) int {
	acc := 0
	for i, r := range e.Line {
		w := runeWidth(r)
		if acc+w > col {
			return i
		}
		acc += w
	}
	return len(e.Line)
}

// Insert splices text at the cursor, truncating it (and setting
// Overflowed) if it would exceed Capacity.
func (e *Editor) Insert(text string) {
	runes := []rune(text)
	e.Overflowed = false

	if room := Capacity - len(e.Line); len(runes) > room {
		runes = runes[:room]
		e.Overflowed = true
	}
	if len(runes) == 0 {
		return
	}

	idx := e.indexAtCol(e.Col)
	e.Line = append(e.Line[:idx], append(append([]rune{}, runes...), e.Line[idx:]...)...)

	inserted := 0
	for _, r := range runes {
		inserted += runeWidth(r)
	}
	e.Col += inserted
	e.Updated = true
	e.ErrorCol = -1
}

// Erase removes n runes forward from the cursor.
func (e *Editor) Erase(n int) {
	if n <= 0 {
		return
	}
	start := e.indexAtCol(e.Col)
	end := start + n
	if end > len(e.Line) {
		end = len(e.Line)
	}
	if end <= start {
		return
	}
	e.Line = append(e.Line[:start], e.Line[end:]...)
	e.Updated = true
	e.ErrorCol = -1
}

// EraseToEnd removes every rune from the cursor to the end of the
// line, the Go form of Ctrl-K's kill-to-end-of-line.
func (e *Editor) EraseToEnd() {
	e.Erase(len(e.Line))
}

// EraseToStart removes every rune before the cursor and moves the
// cursor to column 0, the Go form of Ctrl-U's kill-to-start-of-line.
func (e *Editor) EraseToStart() {
	start := e.indexAtCol(e.Col)
	e.Line = e.Line[start:]
	e.Col = 0
	e.Updated = true
	e.ErrorCol = -1
}

// Move sets the cursor to the given display column, snapping away from
// the second half of a double-width glyph in the direction of motion.
func (e *Editor) Move(col int) {
	dir := 0
	if col > e.Col {
		dir = 1
	} else if col < e.Col {
		dir = -1
	}

	total := e.totalWidth()
	switch {
	case col <= 0:
		col = 0
	case col >= total:
		col = total
	case dir != 0 && e.indexAtCol(col-1) == e.indexAtCol(col):
		col += dir
	}

	e.Col = col
}

// Home moves the cursor to column 0.
func (e *Editor) Home() { e.Move(0) }

// End moves the cursor past the last rune.
func (e *Editor) End() { e.Move(e.totalWidth()) }

// Pan recomputes Offset so the cursor stays visible within a field of
// the given display width, and sets Shift to a tenth of that width.
func (e *Editor) Pan(cols int) {
	e.Shift = cols / 10
	if e.Shift <= 0 {
		e.Shift = 1
	}

	total := e.totalWidth()
	pos := cols - e.Shift - 1
	if total-e.Col < e.Shift {
		pos = cols - (total - e.Col) - 1
	}

	if e.Col > pos {
		e.Offset = e.Col - pos
	} else {
		e.Offset = 0
	}
}
