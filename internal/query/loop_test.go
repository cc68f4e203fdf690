package query

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/qgrep/internal/engine"
	"github.com/kk-code-lab/qgrep/internal/screen"
)

func newTestLoop(t *testing.T, factory SearchFactory) (*Loop, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(40, 10)

	scr := screen.NewFromTcellScreen(sim)
	t.Cleanup(scr.Close)

	logger := log.New(io.Discard)
	l := New(scr, factory, CLIOptions{NoConfirm: true}, logger)
	return l, sim
}

func noopFactory(pattern string, flags Flags) engine.SearchFunc {
	return func(ctx context.Context, w io.Writer, pattern string) error {
		<-ctx.Done()
		return ctx.Err()
	}
}

func TestDispatchInsertsTypedRunes(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Name: "Rune", Rune: 'a'})
	l.dispatch(screen.KeyEvent{Name: "Rune", Rune: 'b'})

	if got := l.Editor.Text(); got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
	if !l.Editor.Updated {
		t.Fatal("expected Editor.Updated after insert")
	}
}

func TestDispatchBackspaceErasesPrecedingRune(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Name: "Rune", Rune: 'a'})
	l.dispatch(screen.KeyEvent{Name: "Rune", Rune: 'b'})
	l.dispatch(screen.KeyEvent{Name: "Backspace"})

	if got := l.Editor.Text(); got != "a" {
		t.Fatalf("got %q, want %q", got, "a")
	}
}

func TestDispatchCtrlOThenKeyTogglesFlag(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Name: "CtrlO"})
	if !l.metaPending {
		t.Fatal("expected metaPending after CtrlO")
	}

	l.dispatch(screen.KeyEvent{Name: "Rune", Rune: 'i'})
	if !l.Flags[FlagIgnoreCase] {
		t.Fatal("expected FlagIgnoreCase set after CtrlO i")
	}
	if l.metaPending {
		t.Fatal("expected metaPending cleared after dispatch")
	}
}

func TestDispatchAltKeyTogglesFlagDirectly(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Rune: 'i', Alt: true})
	if !l.Flags[FlagIgnoreCase] {
		t.Fatal("expected FlagIgnoreCase set after Alt+i")
	}
}

func TestDispatchCtrlVInsertsNextKeyLiterally(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Name: "CtrlV"})
	if !l.verbatim {
		t.Fatal("expected verbatim after CtrlV")
	}

	l.dispatch(screen.KeyEvent{Rune: 'i', Alt: true})
	if got := l.Editor.Text(); got != string(rune('i')) {
		t.Fatalf("got %q, want literal 'i' inserted, not a flag toggle", got)
	}
	if l.Flags[FlagIgnoreCase] {
		t.Fatal("verbatim insert must not toggle flags")
	}
}

func TestDispatchCtrlZEntersHelpMode(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Name: "CtrlZ"})
	if l.mode != ModeHelp {
		t.Fatalf("got mode %v, want ModeHelp", l.mode)
	}
}

func TestDispatchCtrlQQuitsImmediately(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Name: "CtrlQ"})
	if !l.quitting {
		t.Fatal("expected quitting after CtrlQ")
	}
}

func TestDispatchEscWithNoConfirmQuits(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.dispatch(screen.KeyEvent{Name: "Esc"})
	if !l.quitting {
		t.Fatal("expected quitting after Esc with NoConfirm set")
	}
}

func TestEditOnlyBeepsWhenFocusIsOnAResultRow(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)
	l.Model.Rows = []string{"one", "two"}
	l.Model.Select = 0

	l.dispatch(screen.KeyEvent{Name: "Rune", Rune: 'a'})
	if l.Editor.Text() != "" {
		t.Fatalf("expected edit line untouched while a row is focused, got %q", l.Editor.Text())
	}
}

func TestReQueryStartsAndTeardownSearchStopsWorker(t *testing.T) {
	started := make(chan struct{}, 1)
	factory := func(pattern string, flags Flags) engine.SearchFunc {
		return func(ctx context.Context, w io.Writer, pattern string) error {
			started <- struct{}{}
			<-ctx.Done()
			return ctx.Err()
		}
	}

	l, _ := newTestLoop(t, factory)
	l.Editor.Insert("needle")
	l.Editor.Updated = true

	l.reQuery()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("search worker never started")
	}

	if l.ingestor == nil {
		t.Fatal("expected an ingestor after reQuery")
	}

	l.teardownSearch()
	if l.ingestor != nil || l.cancel != nil || l.done != nil {
		t.Fatal("expected teardownSearch to clear worker state")
	}
}

func TestReQueryWithEmptyPatternStartsNoWorker(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)
	l.Editor.Updated = true

	l.reQuery()

	if l.ingestor != nil {
		t.Fatal("expected no ingestor for an empty pattern")
	}
}

func TestRunDebouncesReQueryAcrossConsecutiveEdits(t *testing.T) {
	started := make(chan struct{}, 4)
	factory := func(pattern string, flags Flags) engine.SearchFunc {
		return func(ctx context.Context, w io.Writer, pattern string) error {
			started <- struct{}{}
			<-ctx.Done()
			return ctx.Err()
		}
	}

	l, sim := newTestLoop(t, factory)
	l.opts.QuiescenceTicks = 3 // ticks * pollTimeout (100ms) = 300ms per window

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)

	// A single edit must not fire a re-query before even one idle tick
	// has had a chance to run, let alone a full quiescence window.
	select {
	case <-started:
		t.Fatal("re-query fired immediately after the first edit, quiescence not honored")
	case <-time.After(150 * time.Millisecond):
	}

	// A second edit inside the first window must restart the countdown
	// rather than fire off whatever was left of the first one.
	sim.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)

	select {
	case <-started:
		t.Fatal("re-query fired before a fresh quiescence window elapsed after the second edit")
	case <-time.After(150 * time.Millisecond):
	}

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("re-query never fired after a full quiescence window following the last edit")
	}

	cancel()
	<-done
}

func TestMetaTogglesFlagAndSetsStatusMessage(t *testing.T) {
	l, _ := newTestLoop(t, noopFactory)

	l.meta('i')
	if !l.Flags[FlagIgnoreCase] {
		t.Fatal("expected FlagIgnoreCase set")
	}
	if l.message != "ignore case on" {
		t.Fatalf("got %q, want %q", l.message, "ignore case on")
	}

	l.meta('i')
	if l.message != "ignore case off" {
		t.Fatalf("got %q, want %q", l.message, "ignore case off")
	}
}

func TestMetaUnknownKeyAlerts(t *testing.T) {
	l, sim := newTestLoop(t, noopFactory)
	l.meta('?')
	_ = sim // alert has no observable simulation-screen side effect; absence of a panic/flag change is the assertion
	if l.Flags != (Flags{}) {
		t.Fatal("expected no flag change for an unbound meta key")
	}
}

func TestRenderQueryPaintsRowsAndEditLine(t *testing.T) {
	l, sim := newTestLoop(t, noopFactory)
	l.Model.Rows = []string{"result one"}
	l.Editor.Insert("pat")

	l.render()

	cells, _, _ := sim.GetContents()
	if cells[0].Runes[0] != 'r' {
		t.Fatalf("got %q, want row text painted at (0,0)", string(cells[0].Runes[0]))
	}
	// the edit line is the last of the 10 rows on the 40-column screen
	if cells[9*40].Runes[0] != 'p' {
		t.Fatalf("got %q, want edit line text painted at (9,0)", string(cells[9*40].Runes[0]))
	}
}
