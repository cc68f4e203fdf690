package viewmodel

import "golang.org/x/text/unicode/norm"

// isFilenameTriNUL extracts a filename from a row framed with three NUL
// bytes: a leading NUL, a skipped field, then the filename, terminated
// by a third NUL. This is how a non-list search writer frames the
// filename ahead of the formatted match text so the UI can recover it
// without re-parsing colors.
func isFilenameTriNUL(line string, last *string) bool {
	end := len(line)
	if end < 4 || line[0] != 0 {
		return false
	}

	pos := 1
	for pos < end && line[pos] != 0 {
		pos++
	}
	pos++
	if pos >= end {
		return false
	}

	start := pos
	for pos < end && line[pos] != 0 {
		pos++
	}
	if pos == start || pos >= end {
		return false
	}

	extract := norm.NFC.String(line[start:pos])
	if extract == *last {
		return false
	}
	*last = extract
	return true
}

// isFilenameListMode extracts a filename from a row produced in
// files-with-matches mode: a leading run of ANSI escape sequences
// (color codes), then the unescaped filename, terminated by the next
// escape sequence or end of line.
func isFilenameListMode(line string, last *string) bool {
	end := len(line)
	pos := 0

	for pos < end {
		if line[pos] != 0x1b {
			break
		}
		pos++
		for pos < end && !isAlpha(line[pos]) {
			pos++
		}
		pos++
	}

	if pos >= end {
		return false
	}

	start := pos
	for pos < end && line[pos] != 0x1b {
		pos++
	}

	extract := norm.NFC.String(line[start:pos])
	if extract == *last {
		return false
	}
	*last = extract
	return true
}

// FindFilename scans backward from the focused row (or the top row
// when focus is on the edit line) for the nearest row carrying a
// filename, the same backward search Query::edit performs to resolve
// which file the cursor is currently sitting on.
func (m *Model) FindFilename() (string, bool) {
	start := m.Select
	if start < 0 {
		start = m.Row
	}

	var last string
	for i := start; i >= 0; i-- {
		if isFilename(m.ListMode, m.rowAt(i), &last) {
			return last, true
		}
	}
	return "", false
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// isFilename extracts the filename framed at the start of row, using
// the tri-NUL framing in normal mode or the escape-run framing in list
// mode. An identical extraction to the last one reported does not
// count as a new run and returns false.
func isFilename(listMode bool, line string, last *string) bool {
	if listMode {
		return isFilenameListMode(line, last)
	}
	return isFilenameTriNUL(line, last)
}
