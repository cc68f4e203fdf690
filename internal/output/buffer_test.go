package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferedWriterBasicAppends(t *testing.T) {
	var sink bytes.Buffer
	w := New(&sink, false, 0)

	w.PutStr("hello ")
	w.PutUint(42, 4)
	w.PutByte('\n')
	w.PutHex(0xabc, 6)
	w.PutNewline(true)
	w.PutOct(9)
	w.Flush()

	require.Equal(t, "hello   42\n000abc\n011", sink.String())
}

func TestBufferedWriterPutUTF8PrefixNeverSplitsRune(t *testing.T) {
	var sink bytes.Buffer
	w := New(&sink, false, 0)

	// "café" = c,a,f,é where é is 2 bytes; ask for 4 characters.
	w.PutUTF8Prefix("café!!", 4)
	w.Flush()
	require.Equal(t, "café", sink.String())
}

func TestBufferedWriterURIEscaped(t *testing.T) {
	var sink bytes.Buffer
	w := New(&sink, false, 0)
	w.PutURIEscaped("a b;c%d")
	w.Flush()
	require.Equal(t, "a%20b%3bc%25d", sink.String())
}

func TestBufferChainInvariant_AppendedEqualsFlushedPlusTail(t *testing.T) {
	var sink bytes.Buffer
	w := New(&sink, false, 0)

	payload := strings.Repeat("x", bufferSize*3+100)
	w.PutStr(payload)

	// nothing flushed yet except what overflowed past full buffers
	// during advanceBuffer (since no sync is attached, advanceBuffer
	// flushes eagerly whenever a buffer fills).
	w.Flush()
	require.Equal(t, len(payload), sink.Len())
	require.Equal(t, payload, sink.String())
}

func TestBufferedWriterHoldDiscardAndRelease(t *testing.T) {
	var sink bytes.Buffer
	w := New(&sink, false, 0)

	w.Hold()
	w.PutStr("partial")
	w.Release(false) // held -> discard
	require.Equal(t, "", sink.String())

	w.Hold()
	w.PutStr("keep\n")
	w.mode &^= modeHold // clear hold bit directly; no exported method clears it short of Release
	w.Release(false)
	require.Equal(t, "keep\n", sink.String())
}

func TestBufferedWriterLineBufferedFlushesOnNewlineUnlessHeld(t *testing.T) {
	var sink bytes.Buffer
	w := New(&sink, true, 0)

	w.PutStr("a")
	require.Equal(t, "", sink.String(), "no flush until newline")
	w.PutNewline(true)
	require.Equal(t, "a\n", sink.String())

	w.Hold()
	w.PutStr("b")
	w.PutNewline(true)
	require.Equal(t, "a\n", sink.String(), "hold suppresses line-buffered flush")
}

type shortWriteSink struct{ n int }

func (s *shortWriteSink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	s.n++
	return len(p) - 1, nil // always a short write
}

func TestBufferedWriterShortWriteCancelsAndLatchesEOF(t *testing.T) {
	sink := &shortWriteSink{}
	s := NewSync(Unordered)
	w := New(sink, false, 0)
	w.SyncOn(s, s.NextSlot())

	w.PutStr("hello\n")
	w.Flush()

	require.True(t, w.Cancelled())
	require.True(t, s.Cancelled())

	// a second flush after cancellation must not attempt another write
	before := sink.n
	w.PutStr("more")
	w.Flush()
	require.Equal(t, before, sink.n)
}
