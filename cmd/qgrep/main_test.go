package main

import (
	"bytes"
	"errors"
	"testing"
)

func TestCountingWriterTracksBytesWritten(t *testing.T) {
	var buf bytes.Buffer
	cw := &countingWriter{w: &buf}

	if _, err := cw.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if cw.n != 5 {
		t.Fatalf("got %d, want 5", cw.n)
	}
	if buf.String() != "hello" {
		t.Fatalf("got %q, want %q", buf.String(), "hello")
	}
}

func TestCountingWriterPropagatesUnderlyingError(t *testing.T) {
	boom := errors.New("boom")
	cw := &countingWriter{w: failingWriter{err: boom}}

	_, err := cw.Write([]byte("x"))
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write(p []byte) (int, error) { return 0, f.err }
