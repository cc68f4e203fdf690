// Package query drives the interactive event loop: it wires the edit
// buffer, the row view, the ingestor and the search engine together,
// dispatches key input, and owns the search worker's lifecycle.
package query

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kk-code-lab/qgrep/internal/editor"
	"github.com/kk-code-lab/qgrep/internal/engine"
	"github.com/kk-code-lab/qgrep/internal/ingest"
	"github.com/kk-code-lab/qgrep/internal/screen"
	"github.com/kk-code-lab/qgrep/internal/viewmodel"
)

// pollTimeout is the bounded wait on each key poll, the Go analogue
// of the original's 100ms VKey::poll timeout.
const pollTimeout = 100 * time.Millisecond

// Mode tracks which overlay, if any, is on top of the row view.
type Mode int

const (
	ModeQuery Mode = iota
	ModeHelp
)

// SearchFactory builds a SearchFunc for one query, letting the
// caller's search engine take the interactive flag vector into
// account (e.g. list-files-only) without this package depending on
// engine's reference implementation directly.
type SearchFactory func(pattern string, flags Flags) engine.SearchFunc

// CLIOptions carries the event loop's process-wide configuration,
// replacing the original's global flag variables with an explicit
// invocation context created by the caller.
type CLIOptions struct {
	// QuiescenceTicks is the number of idle poll ticks to wait after
	// the last edit before relaunching the search, the Go form of the
	// CLI's hundredths-of-a-second quiescence delay.
	QuiescenceTicks int
	// NoConfirm skips the interactive "Exit? (y/n)" prompt.
	NoConfirm bool
}

// Loop is the interactive query event loop.
type Loop struct {
	Screen screen.Screen
	Model  *viewmodel.Model
	Editor *editor.Editor
	Flags  Flags

	factory SearchFactory
	opts    CLIOptions
	logger  *log.Logger

	ingestor *ingest.Ingestor
	cancel   context.CancelFunc
	done     <-chan error

	mode        Mode
	delay       int
	metaPending bool
	verbatim    bool
	quitting    bool

	// viewSkip is the row view's horizontal scroll offset, the Go form
	// of the original's skip_ field; it is independent of the edit
	// line's own Offset/Shift panning.
	viewSkip int

	message string
	errText string
}

// New creates a Loop ready to Run. factory is called once per
// re-query to obtain a SearchFunc bound to the current pattern and
// flag vector.
func New(scr screen.Screen, factory SearchFactory, opts CLIOptions, logger *log.Logger) *Loop {
	return &Loop{
		Screen:  scr,
		Model:   viewmodel.New(),
		Editor:  editor.New(),
		factory: factory,
		opts:    opts,
		logger:  logger,
		mode:    ModeQuery,
	}
}

// Run drives the event loop until the user quits or ctx is canceled.
// Shutdown always tears down any running search worker before
// returning.
func (l *Loop) Run(ctx context.Context) {
	defer l.shutdown()

	l.render()

	for !l.quitting {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if l.mode == ModeQuery && l.Editor.Updated && l.delay <= 0 {
			l.reQuery()
		}

		ev := l.Screen.In(pollTimeout)
		switch {
		case ev.Resize:
			l.render()
		case !ev.Nothing:
			// Any key restarts the quiescence countdown, mirroring the
			// delay reset at the top of the original's dispatch loop;
			// harmless on keys that don't touch Editor.Updated since
			// reQuery only fires while it's true.
			l.delay = l.opts.QuiescenceTicks
			l.dispatch(ev)
		default:
			if l.delay > 0 {
				l.delay--
			}
			l.update()
		}
	}
}

// update performs one ingest tick, grows the row view, drains a
// ready-but-unread search error, and repaints the animated status.
func (l *Loop) update() {
	if l.ingestor != nil {
		l.ingestor.Tick()
		l.Model.Grow(l.ingestor.Rows)
	}
	l.drainWorkerError()
	l.render()
}

// drainWorkerError performs a non-blocking receive on the worker's
// done channel so a pattern-compile error surfaces as soon as the
// worker reports it, rather than only at the next teardown.
func (l *Loop) drainWorkerError() {
	if l.done == nil {
		return
	}
	select {
	case err := <-l.done:
		l.handleWorkerError(err)
		l.done = nil
	default:
	}
}

func (l *Loop) handleWorkerError(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	var perr *engine.PatternError
	if errors.As(err, &perr) {
		l.Editor.ErrorCol = perr.Offset
		l.errText = perr.Message
		l.logger.Error("pattern error", "err", perr.Message, "offset", perr.Offset)
		return
	}

	l.errText = err.Error()
	l.logger.Error("search worker error", "err", err)
}

// reQuery tears down any running search, resets the row view, and
// spawns a fresh worker for the edit line's current text.
func (l *Loop) reQuery() {
	l.teardownSearch()
	l.Model.Reset()
	l.Editor.Updated = false
	l.delay = l.opts.QuiescenceTicks

	l.Model.SelectAll = false

	pattern := l.Editor.Text()
	if pattern == "" {
		return
	}

	search := l.factory(pattern, l.Flags)
	l.Model.ListMode = l.Flags[FlagListFiles]

	ing, cancel, done, err := startSearch(search, pattern)
	if err != nil {
		l.logger.Error("pipe create failed", "err", err)
		l.errText = err.Error()
		return
	}

	l.ingestor = ing
	l.cancel = cancel
	l.done = done
}

// teardownSearch cancels the running worker, joins it, and closes the
// pipe's read end, mirroring the shutdown sequence's per-search steps.
func (l *Loop) teardownSearch() {
	if l.cancel == nil {
		return
	}

	l.cancel()
	// done is nil once drainWorkerError has already received the
	// worker's result; receiving from it then would block forever.
	if l.done != nil {
		err := <-l.done
		l.handleWorkerError(err)
	}

	if l.ingestor != nil {
		l.ingestor.Close()
	}

	l.cancel = nil
	l.done = nil
	l.ingestor = nil
}

// shutdown runs the full shutdown sequence once, on loop exit.
func (l *Loop) shutdown() {
	l.teardownSearch()
	l.Screen.Close()
}

func (l *Loop) visibleRows() int {
	return l.Screen.Rows()
}
