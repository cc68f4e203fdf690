// Package logging sets up the process-wide structured logger the
// event loop and search workers write diagnostics through.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Dir is the directory log files are written under. Empty selects
	// the user's home directory plus ".qgrep/logs".
	Dir string
	// Level sets the minimum logged level; the zero value is
	// log.InfoLevel.
	Level log.Level
	// Writer, if set, overrides the log file and writes there instead
	// (used by tests to avoid touching the filesystem).
	Writer io.Writer
}

// New opens (creating if needed) a dated log file and returns a logger
// writing to it, plus a closer to flush and release the file. Mirrors
// the dated-log-file-per-run layout.
func New(opts Options) (*log.Logger, func() error, error) {
	w := opts.Writer
	var file *os.File

	if w == nil {
		dir := opts.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("logging: resolve home directory: %w", err)
			}
			dir = filepath.Join(home, ".qgrep", "logs")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log directory: %w", err)
		}

		name := fmt.Sprintf("qgrep-%s.log", time.Now().Format("2006-01-02"))
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open log file: %w", err)
		}
		file = f
		w = f
	}

	// log.InfoLevel is the zero value, so a zero Options.Level already
	// means "info" without any special-casing here.
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           opts.Level,
	})

	close := func() error {
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, close, nil
}
