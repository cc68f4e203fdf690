package query

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseEditorCommandSplitsOnWhitespace(t *testing.T) {
	got := parseEditorCommand("vim -n")
	want := []string{"vim", "-n"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParseEditorCommandEmptyStringReturnsNil(t *testing.T) {
	if got := parseEditorCommand(""); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestEditorCommandPrefersGrepEditOverEditor(t *testing.T) {
	t.Setenv("EDITOR", "ed")
	t.Setenv("GREP_EDIT", "nano -w")

	args, ok := editorCommand()
	if !ok {
		t.Fatal("expected ok")
	}
	if len(args) != 2 || args[0] != "nano" || args[1] != "-w" {
		t.Fatalf("got %v", args)
	}
}

func TestEditorCommandFallsBackToEditor(t *testing.T) {
	t.Setenv("GREP_EDIT", "")
	t.Setenv("EDITOR", "ed")

	args, ok := editorCommand()
	if !ok || len(args) != 1 || args[0] != "ed" {
		t.Fatalf("got (%v, %v)", args, ok)
	}
}

func TestEditorCommandReportsNotOkWhenUnset(t *testing.T) {
	t.Setenv("GREP_EDIT", "")
	t.Setenv("EDITOR", "")

	if _, ok := editorCommand(); ok {
		t.Fatal("expected not ok with no editor configured")
	}
}

func TestRegularFileAcceptsPlainFilesOnly(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !regularFile(file) {
		t.Fatal("expected plain file to be regular")
	}
	if regularFile(dir) {
		t.Fatal("expected directory to be rejected")
	}
	if regularFile(filepath.Join(dir, "missing")) {
		t.Fatal("expected missing file to be rejected")
	}
}

func TestStartSearchReturnsRunningWorker(t *testing.T) {
	search := func(ctx context.Context, w io.Writer, pattern string) error {
		_, err := io.WriteString(w, "hello")
		return err
	}

	ing, cancel, done, err := startSearch(search, "pattern")
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected worker error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker never finished")
	}

	ing.Tick()
	if err := ing.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}

func TestStartSearchPropagatesCancellation(t *testing.T) {
	search := func(ctx context.Context, w io.Writer, pattern string) error {
		<-ctx.Done()
		return ctx.Err()
	}

	ing, cancel, done, err := startSearch(search, "pattern")
	if err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker never observed cancellation")
	}
	ing.Close()
}
