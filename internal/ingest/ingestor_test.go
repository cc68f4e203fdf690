package ingest

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// chunkedReader replays a fixed sequence of reads, one per Read call,
// returning WouldBlock once the sequence is exhausted unless eof is set.
type chunkedReader struct {
	chunks [][]byte
	i      int
	eof    bool
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.i >= len(c.chunks) {
		if c.eof {
			return 0, io.EOF
		}
		return 0, errWouldBlock
	}
	n := copy(p, c.chunks[c.i])
	c.i++
	return n, nil
}

func TestIngestorIncrementalSplitAcrossChunks(t *testing.T) {
	r := &chunkedReader{
		chunks: [][]byte{
			[]byte("foo\nba"),
			[]byte("r\nbaz"),
		},
		eof: true,
	}
	ing := New(r)

	ing.Tick() // "foo\nba" -> rows=["foo"], append("ba")
	require.Equal(t, []string{"foo", "ba"}, ing.Rows)
	require.True(t, ing.Append)

	ing.Tick() // "r\nbaz" -> completes "bar", starts "baz" (still open, no EOF yet)
	require.Equal(t, []string{"foo", "bar", "baz"}, ing.Rows)
	require.True(t, ing.Append)

	ing.Tick() // EOF finalizes "baz" as a complete row
	require.True(t, ing.EOF)
	require.False(t, ing.Append)
	require.Equal(t, []string{"foo", "bar", "baz"}, ing.Rows)
}

func TestIngestorWouldBlockIsNotEOF(t *testing.T) {
	r := &chunkedReader{chunks: [][]byte{[]byte("a\n")}}
	ing := New(r)

	ing.Tick()
	require.Equal(t, []string{"a"}, ing.Rows)
	require.False(t, ing.EOF)

	ing.Tick() // would-block: no change, not EOF
	require.False(t, ing.EOF)
	require.Equal(t, []string{"a"}, ing.Rows)
}

func TestIngestorFatalReadErrorSetsEOFAndErr(t *testing.T) {
	boom := errors.New("boom")
	r := &errOnceReader{err: boom}
	ing := New(r)

	ing.Tick()
	require.True(t, ing.EOF)
	require.Equal(t, boom, ing.Err)
}

type errOnceReader struct{ err error }

func (e *errOnceReader) Read(p []byte) (int, error) { return 0, e.err }

func TestIngestorRowPartitioningRoundTrip(t *testing.T) {
	data := []byte("alpha\nbeta\ngamma\n")
	r := bytes.NewReader(data)
	ing := New(&eofWrap{r})

	for !ing.EOF {
		ing.Tick()
	}

	require.Equal(t, []string{"alpha", "beta", "gamma"}, ing.Rows)
	joined := ""
	for _, row := range ing.Rows {
		joined += row + "\n"
	}
	require.Equal(t, string(data), joined)
}

// eofWrap turns bytes.Reader's plain io.EOF into the same shape a
// real non-blocking pipe reports once the writer closes.
type eofWrap struct{ r *bytes.Reader }

func (e *eofWrap) Read(p []byte) (int, error) { return e.r.Read(p) }
