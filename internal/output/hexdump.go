package output

// Hex dump color classes, matching Output::Dump's HEX_MATCH..HEX_CONTEXT_LINE.
const (
	HexMatch        = 0
	HexLine         = 1
	HexContextMatch = 2
	HexContextLine  = 3
)

// maxHexColumns bounds one row of the hex dump (8 groups of 8 bytes).
const maxHexColumns = 64

// Dump is the per-writer hex-dump scratch: a row of up to 64 columns
// each carrying a byte plus a 2-bit color mode, the previous row (to
// fold identical rows into a single "*" line), and the current byte
// offset. The caller supplies the color mode for each byte; Dump only
// assembles and folds rows — the policy of what counts as a match is
// an out-of-scope concern.
type Dump struct {
	offset      uint64
	columns     int // configured columns per row (<= maxHexColumns)
	bytes       [maxHexColumns]int16
	prev        [maxHexColumns]int16
	pos         int
	pstar       bool
	lineEmitter func(off uint64, bytes []int16, starred bool)
}

func (d *Dump) init() {
	d.columns = maxHexColumns
	d.reset()
}

// SetColumns configures the row width (clamped to 1..64).
func (d *Dump) SetColumns(n int) {
	if n < 1 {
		n = 1
	}
	if n > maxHexColumns {
		n = maxHexColumns
	}
	d.columns = n
}

// SetLineEmitter installs the callback invoked once per completed
// row; bytes[i]>>8 is the color mode, bytes[i]&0xff is the byte
// value, and a value of -1 marks a column with no byte (row padding).
func (d *Dump) SetLineEmitter(f func(off uint64, bytes []int16, starred bool)) {
	d.lineEmitter = f
}

func (d *Dump) reset() {
	for i := 0; i < maxHexColumns; i++ {
		d.prev[i] = -1
		d.bytes[i] = -1
	}
	d.pos = 0
}

// Hex feeds size bytes of data at byte_offset, tagging each with mode
// for color highlighting, emitting a line every time a row fills.
func (d *Dump) Hex(mode int, byteOffset uint64, data []byte) {
	if d.pos == 0 {
		d.offset = byteOffset
	}
	for _, b := range data {
		d.bytes[d.pos] = int16(mode<<8) | int16(b)
		d.pos++
		if d.pos == d.columns {
			d.emitLine()
		}
	}
}

// Next jumps to the next hex dump location: if byteOffset lands in a
// different row than the current offset, the in-progress row is
// completed first.
func (d *Dump) Next(byteOffset uint64) {
	if d.offset/uint64(d.columns) != byteOffset/uint64(d.columns) {
		d.Done()
	}
}

// Incomplete reports whether the current row has buffered but
// unemitted bytes.
func (d *Dump) Incomplete() bool {
	return d.pos != 0
}

// Complete finishes the current row if off lies beyond it.
func (d *Dump) Complete(off uint64) {
	if d.pos != 0 && d.offset < off {
		d.Done()
	}
}

// Done flushes any incomplete row and resets fold-detection state.
func (d *Dump) Done() {
	if d.Incomplete() {
		d.emitLine()
	}
	d.reset()
}

// emitLine assembles one row, folds it into a single "*" continuation
// when it is byte-for-byte identical to the previous row, and resets
// the row buffer for the next one.
func (d *Dump) emitLine() {
	identical := true
	for i := 0; i < d.columns; i++ {
		if d.bytes[i] != d.prev[i] {
			identical = false
			break
		}
	}

	if identical && d.pstar {
		// already folded into the preceding "*" line; nothing to emit
	} else if d.lineEmitter != nil {
		d.lineEmitter(d.offset, d.bytes[:d.columns], identical)
	}
	d.pstar = identical

	copy(d.prev[:d.columns], d.bytes[:d.columns])
	for i := 0; i < d.columns; i++ {
		d.bytes[i] = -1
	}
	d.offset += uint64(d.columns)
	d.pos = 0
}
