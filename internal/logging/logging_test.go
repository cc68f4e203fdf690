package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNewWithWriterSkipsFilesystem(t *testing.T) {
	var buf bytes.Buffer
	logger, close, err := New(Options{Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	defer close()

	logger.Info("started", "version", "test")

	if !strings.Contains(buf.String(), "started") {
		t.Fatalf("expected log output to contain the message, got %q", buf.String())
	}
}

func TestNewWithDirCreatesDatedLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, close, err := New(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello")
	if err := close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d log files, want 1: %v", len(entries), entries)
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "qgrep-") || !strings.HasSuffix(name, ".log") {
		t.Fatalf("got filename %q, want qgrep-*.log", name)
	}
}
