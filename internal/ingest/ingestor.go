// Package ingest reads the non-blocking pipe fed by a search worker
// and splits it into rows for the view model, without ever blocking
// the UI thread.
package ingest

import (
	"bytes"
	"errors"
	"io"
)

// scratchSize mirrors the size of one output buffer, so a single
// ingest tick never needs more than one read syscall's worth of
// scratch space.
const scratchSize = 16 * 1024

// Ingestor reads a non-blocking io.Reader and appends newline-split
// rows to Rows. It never blocks: callers invoke Tick from the UI
// event loop between key polls.
type Ingestor struct {
	r       io.Reader
	scratch [scratchSize]byte

	Rows   []string
	Append bool // true: the next fragment continues the last row

	EOF bool
	Err error
}

// New creates an Ingestor reading from r.
func New(r io.Reader) *Ingestor {
	return &Ingestor{r: r}
}

// errWouldBlock is returned by the configured reader when no bytes are
// currently available; Tick treats it as "nothing to do this tick"
// rather than an error.
var errWouldBlock = errors.New("ingest: would block")

// WouldBlock is the sentinel error a non-blocking reader should wrap
// or return verbatim when no data is currently available. Platforms
// without non-blocking pipes are expected to emulate this with an
// overlapped/pending read whose wait primitive returns immediately.
func WouldBlock() error { return errWouldBlock }

// Tick performs one non-blocking read and appends any complete rows
// found. It returns the number of new rows appended (not counting a
// continued partial row).
func (ing *Ingestor) Tick() int {
	if ing.EOF {
		return 0
	}

	n, err := ing.r.Read(ing.scratch[:])

	var added int
	if n > 0 {
		added = ing.appendChunk(ing.scratch[:n])
	}

	switch {
	case err == nil, errors.Is(err, errWouldBlock):
		return added
	case err == io.EOF:
		// EOF finalizes any trailing fragment: there is no more data
		// coming, so a row with no trailing newline is still the last
		// row rather than an open continuation.
		ing.EOF = true
		ing.Append = false
		return added
	default:
		ing.EOF = true
		ing.Err = err
		ing.Append = false
		return added
	}
}

// appendChunk splits buf on newlines and merges the result into Rows,
// honoring the Append continuation flag across calls.
func (ing *Ingestor) appendChunk(buf []byte) int {
	added := 0
	for len(buf) > 0 {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			ing.appendOrStart(string(buf))
			ing.Append = true
			return added
		}
		ing.appendOrStart(string(buf[:i]))
		ing.Append = false
		added++
		buf = buf[i+1:]
	}
	return added
}

func (ing *Ingestor) appendOrStart(s string) {
	if ing.Append && len(ing.Rows) > 0 {
		ing.Rows[len(ing.Rows)-1] += s
		return
	}
	ing.Rows = append(ing.Rows, s)
}

// Close closes the underlying reader if it supports it, used when the
// event loop tears down a search worker's pipe.
func (ing *Ingestor) Close() error {
	if c, ok := ing.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Reset clears accumulated rows, used when a re-search starts.
func (ing *Ingestor) Reset(r io.Reader) {
	ing.r = r
	ing.Rows = nil
	ing.Append = false
	ing.EOF = false
	ing.Err = nil
}
