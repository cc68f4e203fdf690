package query

import (
	"github.com/kk-code-lab/qgrep/internal/editor"
	"github.com/kk-code-lab/qgrep/internal/screen"
)

// render repaints the whole screen for the current mode, then flushes
// it, the Go analogue of Query::redraw/draw.
func (l *Loop) render() {
	switch l.mode {
	case ModeHelp:
		l.renderHelp()
	default:
		l.renderQuery()
	}
	l.Screen.Show()
}

func (l *Loop) renderQuery() {
	l.Screen.Clear()

	rows := l.visibleRows()
	cols := l.Screen.Cols()
	listRows := rows - 1 // last row is reserved for the edit line

	for i := 0; i < listRows; i++ {
		idx := l.Model.Row + i
		if idx >= len(l.Model.Rows) {
			break
		}

		style := screen.StyleNormal
		if idx < len(l.Model.Selected) && l.Model.Selected[idx] {
			style = screen.StyleSelect
		}
		if idx == l.Model.Select {
			style = screen.StyleInvert
		}
		l.Screen.SetStyle(style)
		l.Screen.Put(i, 0, clip(skip(l.Model.Rows[idx], l.viewSkip), cols))
	}
	l.Screen.Normal()

	l.renderEditLine(listRows, cols)
	l.renderStatus(listRows, cols)
}

// renderEditLine paints the query line and, when an error is latched,
// paints the offending rune in inverse video. Control-character
// segments are painted in the normal style. Nothing is underlined or
// drawn in red.
func (l *Loop) renderEditLine(row, cols int) {
	col := 0
	for _, seg := range l.Editor.Display(l.Editor.Offset, cols) {
		switch seg.Kind {
		case editor.SegError, editor.SegErrorControl:
			l.Screen.SetStyle(screen.StyleInvert)
		default:
			l.Screen.SetStyle(screen.StyleNormal)
		}
		l.Screen.Put(row, col, seg.Text)
		col += len([]rune(seg.Text))
	}
	l.Screen.Normal()
	l.Screen.SetPos(row, l.Editor.Col-l.Editor.Offset)
}

// renderStatus paints the one-line status area: a latched error, a
// searching indicator, an end-of-results marker, or the last
// flag-toggle message, in that priority order. The searching indicator
// is a fixed string; it is not animated.
func (l *Loop) renderStatus(row, cols int) {
	status := l.statusText()
	if status == "" {
		return
	}
	l.Screen.SetStyle(screen.StyleInvert)
	l.Screen.Put(row, 0, clip(status, cols))
	l.Screen.Normal()
}

func (l *Loop) statusText() string {
	switch {
	case l.errText != "":
		return "(ERROR) " + l.errText
	case l.ingestor != nil && !l.ingestor.EOF:
		return "Searching…"
	case l.ingestor != nil && l.ingestor.EOF:
		return "(END)"
	case l.message != "":
		return l.message
	default:
		return ""
	}
}

func (l *Loop) renderHelp() {
	l.Screen.Clear()
	l.Screen.Put(0, 0, "Help — press any key to return")

	row := 2
	for idx := FlagIndex(0); idx < numFlags; idx++ {
		if row >= l.visibleRows() {
			break
		}
		l.Screen.Put(row, 0, string(KeyFor(idx))+"  "+LabelFor(idx))
		row++
	}
}

// skip drops the first n bytes of row, used for the row view's
// independent horizontal scroll.
func skip(row string, n int) string {
	if n <= 0 {
		return row
	}
	if n >= len(row) {
		return ""
	}
	return row[n:]
}

// clip truncates s to at most n bytes, used only for the status and
// edit lines; result rows are truncated upstream by the writer's own
// ANSI-aware truncation filter.
func clip(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
