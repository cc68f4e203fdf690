package viewmodel

// Up moves focus or the viewport up one row. When a row is focused,
// focus moves first; the viewport only follows once focus scrolls
// above it.
func (m *Model) Up() {
	if m.Select > 0 {
		m.Select--
		if m.Select > m.Row {
			return
		}
	}
	if m.Row > 0 {
		m.Row--
	}
}

// Down moves focus or the viewport down one row. visibleRows is the
// screen's total row count (including the reserved prompt line).
func (m *Model) Down(visibleRows int) {
	if m.Select >= 0 {
		m.Select++
		if m.Select >= len(m.Rows) {
			m.Select = len(m.Rows) - 1
		}
		if m.Select < m.Row+visibleRows-2 {
			return
		}
	}
	if m.Row+1 < len(m.Rows) {
		m.Row++
	}
}

// PgUp moves focus or the viewport up by a page, or half a page when
// half is true.
func (m *Model) PgUp(visibleRows int, half bool) {
	step := visibleRows - 2
	if half {
		step = visibleRows / 2
	}

	if m.Select >= 0 {
		m.Select -= step
		if m.Select < 0 {
			m.Select = 0
		}
		if m.Select > m.Row {
			return
		}
	}
	if m.Row > 0 {
		m.Row -= step
		if m.Row < 0 {
			m.Row = 0
		}
	}
}

// PgDn moves focus or the viewport down by a page, or half a page when
// half is true.
func (m *Model) PgDn(visibleRows int, half bool) {
	step := visibleRows - 2
	if half {
		step = visibleRows / 2
	}

	if m.Select >= 0 {
		m.Select += step
		if m.Select >= len(m.Rows) {
			m.Select = len(m.Rows) - 1
		}
		if m.Select < m.Row+visibleRows-2 {
			return
		}
	}
	if m.Row+visibleRows-1 <= len(m.Rows) {
		oldRow := m.Row
		m.Row += step
		if m.Row+visibleRows > len(m.Rows) {
			m.Row = len(m.Rows) - visibleRows + 2
			if m.Row < oldRow {
				m.Row = oldRow
			}
		}
	}
}

// Back scrolls to the first row of the previous file, or behaves as
// PgUp when ByFile is false.
func (m *Model) Back(visibleRows int) {
	if !m.ByFile {
		m.PgUp(visibleRows, false)
		return
	}
	if m.Row >= len(m.Rows) {
		return
	}

	m.Up()

	filename := m.lastFilename
	found := false

	if m.Select == -1 {
		isFilename(m.ListMode, m.rowAt(m.Row), &filename)
		for m.Row > 0 && !found {
			found = isFilename(m.ListMode, m.rowAt(m.Row), &filename)
			if !found {
				m.Up()
			}
		}
	} else {
		isFilename(m.ListMode, m.rowAt(m.Select), &filename)
		for m.Select > 0 && !found {
			found = isFilename(m.ListMode, m.rowAt(m.Select), &filename)
			if !found {
				m.Up()
			}
		}
	}

	if found {
		m.lastFilename = filename
		m.Down(visibleRows)
	}
}

// Next scrolls to the first row of the next file, or behaves as PgDn
// when ByFile is false. exhausted reports whether the search has
// produced all its rows (EOF with nothing buffered); abort polls for a
// keystroke and, if one is pending, stops the scan early; waitMore is
// called to give the ingestor a chance to produce more rows before the
// next poll. Any of the three may be nil, e.g. in tests.
func (m *Model) Next(visibleRows int, exhausted func() bool, abort func() bool, waitMore func()) {
	if !m.ByFile {
		m.PgDn(visibleRows, false)
		return
	}

	filename := m.lastFilename

	if m.Select == -1 {
		if m.Row+visibleRows-1 > len(m.Rows) {
			return
		}
		isFilename(m.ListMode, m.rowAt(m.Row), &filename)
		m.Down(visibleRows)

		for {
			found := false
			for m.Row+visibleRows-1 <= len(m.Rows) && !found {
				found = isFilename(m.ListMode, m.rowAt(m.Row), &filename)
				if !found {
					m.Down(visibleRows)
				}
			}
			if found || callOrFalse(exhausted) {
				if found {
					m.lastFilename = filename
				}
				break
			}
			if callOrFalse(abort) {
				break
			}
			callVoid(waitMore)
		}
	} else {
		if len(m.Rows) <= 1 {
			return
		}
		isFilename(m.ListMode, m.rowAt(m.Select), &filename)
		m.Down(visibleRows)

		for {
			found := false
			for m.Select+1 < len(m.Rows) && !found {
				found = isFilename(m.ListMode, m.rowAt(m.Select), &filename)
				if !found {
					m.Down(visibleRows)
				}
			}
			if found || callOrFalse(exhausted) {
				if found {
					m.lastFilename = filename
				}
				break
			}
			if callOrFalse(abort) {
				break
			}
			callVoid(waitMore)
		}
	}
}

// Jump moves focus (or the viewport, when focus is on the edit line)
// directly to row. When row is beyond what has been ingested so far, it
// repeats the scan until exhausted or abort reports true; those two
// hooks have the same meaning as in Next. Unlike Next, Jump takes no
// waitMore hook and does not ingest rows itself.
func (m *Model) Jump(row int, visibleRows int, exhausted func() bool, abort func() bool) {
	if len(m.Rows) <= 0 {
		return
	}

	if m.Select == -1 {
		if row <= m.Row {
			m.Row = row
			if m.Row >= len(m.Rows) {
				m.Row = len(m.Rows) - 1
			}
			return
		}
		for {
			for m.Row < row {
				old := m.Row
				m.Down(visibleRows)
				if m.Row == old {
					break
				}
			}
			if m.Row == row || callOrFalse(exhausted) {
				break
			}
			if callOrFalse(abort) {
				break
			}
		}
	} else {
		if row <= m.Select {
			m.Select = row
			if m.Select >= len(m.Rows) {
				m.Select = len(m.Rows) - 1
			}
			return
		}
		for {
			for m.Select < row {
				old := m.Select
				m.Down(visibleRows)
				if m.Select == old {
					break
				}
			}
			if m.Select == row || callOrFalse(exhausted) {
				break
			}
			if callOrFalse(abort) {
				break
			}
		}
	}
}

func (m *Model) rowAt(i int) string {
	if i < 0 || i >= len(m.Rows) {
		return ""
	}
	return m.Rows[i]
}

func callOrFalse(f func() bool) bool {
	if f == nil {
		return false
	}
	return f()
}

func callVoid(f func()) {
	if f != nil {
		f()
	}
}
