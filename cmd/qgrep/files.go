package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kk-code-lab/qgrep/internal/engine"
)

// loadFiles reads each named path into memory as an engine.File, the
// in-memory stand-in for the real search engine's file walker (out of
// scope per the search engine contract).
func loadFiles(paths []string) ([]engine.File, error) {
	files := make([]engine.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("qgrep: read %s: %w", path, err)
		}
		lines := strings.Split(string(data), "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		files = append(files, engine.File{Name: path, Lines: lines})
	}
	return files, nil
}
