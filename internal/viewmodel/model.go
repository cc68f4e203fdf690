// Package viewmodel holds the in-memory row view the event loop paints:
// the growing row list, the parallel selected-bit vector, the current
// scroll position and focus, and the filename-run navigation used by
// back/next/jump.
package viewmodel

// Model is the view model for one search's result rows. Row indices are
// 0-based. Select of -1 means focus is on the edit line rather than any
// result row.
type Model struct {
	Rows     []string
	Selected []bool

	// SelectAll marks every row selected as it is appended, mirroring
	// "select all" toggling mid-stream.
	SelectAll bool

	// Row is the index of the top visible row.
	Row int

	// Select is the index of the focused row, or -1 for the edit line.
	Select int

	// Mark is the bookmarked row, or -1 if unset.
	Mark int

	// ListMode switches filename-run detection to the escape-run
	// framing used by files-with-matches output.
	ListMode bool

	// ByFile gates Back/Next's filename-run scrolling; when false they
	// behave as a plain page up/down (used when the active output mode
	// has no stable per-line filename framing, e.g. counts-only).
	ByFile bool

	lastFilename string
}

// New creates an empty view model.
func New() *Model {
	return &Model{Select: -1, Mark: -1, ByFile: true}
}

// Reset clears all rows and navigation state for a fresh search, as
// done when the event loop relaunches the search worker.
func (m *Model) Reset() {
	m.Rows = nil
	m.Selected = nil
	m.Row = 0
	m.Select = -1
	m.Mark = -1
	m.lastFilename = ""
}

// Grow appends freshly ingested rows and extends the selection bitset
// to match, selecting each new row when SelectAll is set.
func (m *Model) Grow(rows []string) {
	if len(rows) <= len(m.Rows) {
		m.Rows = rows
		return
	}
	added := len(rows) - len(m.Rows)
	m.Rows = rows
	for i := 0; i < added; i++ {
		m.Selected = append(m.Selected, m.SelectAll)
	}
}

// ToggleSelect flips the selected bit of the focused row, matching
// Enter/Delete on a focused row.
func (m *Model) ToggleSelect() {
	if m.Select < 0 || m.Select >= len(m.Selected) {
		return
	}
	m.Selected[m.Select] = !m.Selected[m.Select]
}

// SetSelectAll sets or clears every row's selected bit and the running
// SelectAll flag applied to rows appended afterward.
func (m *Model) SetSelectAll(all bool) {
	m.SelectAll = all
	for i := range m.Selected {
		m.Selected[i] = all
	}
}

// SetMark bookmarks the focused row (or the top row when focus is on
// the edit line).
func (m *Model) SetMark() {
	if m.Select >= 0 {
		m.Mark = m.Select
	} else {
		m.Mark = m.Row
	}
}

// JumpToMark jumps to the bookmarked row, if any, using the same
// semantics as Jump.
func (m *Model) JumpToMark(visibleRows int) {
	if m.Mark < 0 {
		return
	}
	m.Jump(m.Mark, visibleRows, nil, nil)
}
