package query

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/kk-code-lab/qgrep/internal/engine"
	"github.com/kk-code-lab/qgrep/internal/ingest"
)

// startSearch launches search in its own goroutine, writing to the
// write end of a fresh non-blocking pipe, and returns an Ingestor
// reading the other end plus the means to cancel and join the worker.
// Grounded on Query::fetch's own pipe-per-search lifecycle: one pipe,
// one worker, torn down and recreated on every re-query.
func startSearch(search engine.SearchFunc, pattern string) (*ingest.Ingestor, context.CancelFunc, <-chan error, error) {
	pr, pw, err := ingest.NonblockingPipe()
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		err := search(ctx, pw, pattern)
		pw.Close()
		done <- err
	}()

	return ingest.New(pr), cancel, done, nil
}

// editorCommand resolves the external editor to launch on a focused
// row's file, GREP_EDIT taking priority over EDITOR, per the
// Environment paragraph of the external interfaces contract.
func editorCommand() ([]string, bool) {
	candidate := os.Getenv("GREP_EDIT")
	if candidate == "" {
		candidate = os.Getenv("EDITOR")
	}
	return parseEditorCommand(candidate), candidate != ""
}

func parseEditorCommand(cmd string) []string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// regularFile reports whether path exists and is a plain file, the
// same check Query::edit performs before handing the file to the
// editor (refusing directories and special files).
func regularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// launchEditor suspends the screen, runs editor on path in the
// foreground, and resumes the screen once the child exits.
func (l *Loop) launchEditor(args []string, path string) error {
	full := append(append([]string{}, args...), path)

	if err := l.Screen.Suspend(); err != nil {
		return err
	}
	cmd := exec.Command(full[0], full[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()

	if err := l.Screen.Resume(); err != nil {
		return err
	}
	return runErr
}

// editFile launches the configured editor on the file the cursor is
// currently over, mirroring Query::edit's guard, lookup and launch
// sequence.
func (l *Loop) editFile() {
	if l.Model.Select >= len(l.Model.Rows) || l.Flags[FlagCountLines] {
		l.Screen.Alert()
		return
	}

	args, ok := editorCommand()
	if !ok {
		l.Screen.Alert()
		return
	}

	filename, found := l.Model.FindFilename()
	if found {
		found = regularFile(filename)
	}
	if !found {
		l.Screen.Alert()
		l.message = "Cannot edit file " + filename
		return
	}

	if err := l.launchEditor(args, filename); err != nil {
		l.logger.Error("editor launch failed", "err", err, "file", filename)
		l.Screen.Alert()
		return
	}

	l.Model.Mark = l.Model.Select
	if l.Model.Mark < 0 {
		l.Model.Mark = l.Model.Row
	}
	l.Model.Select = -1
}

