package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFilesSplitsOnNewlinesAndDropsTrailingEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := loadFiles([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	want := []string{"one", "two", "three"}
	got := files[0].Lines
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLoadFilesMissingPathReturnsError(t *testing.T) {
	if _, err := loadFiles([]string{"/no/such/file"}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
