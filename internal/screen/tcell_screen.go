package screen

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellScreen implements Screen on top of a github.com/gdamore/tcell/v2
// terminal, following the same Init/PollEvent-goroutine wiring as the
// teacher's application loop. Mouse reporting is not enabled.
type TcellScreen struct {
	s tcell.Screen

	row, col int
	style    Style
	mono     bool

	normalStyle   tcell.Style
	invertStyle   tcell.Style
	selectStyle   tcell.Style
	deselectStyle tcell.Style

	events chan tcell.Event
	done   chan struct{}
	closed sync.Once

	savedRow, savedCol int
}

// NewTcell initializes a real terminal screen.
func NewTcell() (*TcellScreen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return newTcellScreen(s), nil
}

// NewFromTcellScreen wraps an already-initialized tcell.Screen, used
// in tests with tcell.NewSimulationScreen.
func NewFromTcellScreen(s tcell.Screen) *TcellScreen {
	return newTcellScreen(s)
}

func newTcellScreen(s tcell.Screen) *TcellScreen {
	t := &TcellScreen{
		s:             s,
		normalStyle:   tcell.StyleDefault,
		invertStyle:   tcell.StyleDefault.Reverse(true),
		selectStyle:   tcell.StyleDefault.Background(tcell.ColorBlue),
		deselectStyle: tcell.StyleDefault,
		events:        make(chan tcell.Event, 16),
		done:          make(chan struct{}),
	}
	go t.pump()
	return t
}

func (t *TcellScreen) pump() {
	for {
		ev := t.s.PollEvent()
		if ev == nil {
			close(t.events)
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *TcellScreen) Cols() int { c, _ := t.s.Size(); return c }
func (t *TcellScreen) Rows() int { _, r := t.s.Size(); return r }

func (t *TcellScreen) currentStyle() tcell.Style {
	switch t.style {
	case StyleInvert:
		return t.invertStyle
	case StyleSelect:
		return t.selectStyle
	case StyleDeselect:
		return t.deselectStyle
	default:
		return t.normalStyle
	}
}

func (t *TcellScreen) Put(row, col int, text string) {
	style := t.currentStyle()
	c := col
	for _, r := range text {
		t.s.SetContent(c, row, r, nil, style)
		c++
	}
	t.row, t.col = row, c
	t.s.ShowCursor(t.col, t.row)
}

func (t *TcellScreen) SetPos(row, col int) {
	t.row, t.col = row, col
	t.s.ShowCursor(col, row)
}

func (t *TcellScreen) Clear() { t.s.Clear() }

func (t *TcellScreen) Home() { t.SetPos(0, 0) }

func (t *TcellScreen) End() {
	t.SetPos(t.Rows()-1, 0)
}

func (t *TcellScreen) Erase() {
	cols := t.Cols()
	style := t.currentStyle()
	for c := t.col; c < cols; c++ {
		t.s.SetContent(c, t.row, ' ', nil, style)
	}
}

func (t *TcellScreen) Save() { t.savedRow, t.savedCol = t.row, t.col }

func (t *TcellScreen) Restore() { t.SetPos(t.savedRow, t.savedCol) }

func (t *TcellScreen) SetStyle(s Style) { t.style = s }
func (t *TcellScreen) Normal()          { t.style = StyleNormal }
func (t *TcellScreen) Invert()          { t.style = StyleInvert }
func (t *TcellScreen) Select()          { t.style = StyleSelect }
func (t *TcellScreen) Deselect()        { t.style = StyleDeselect }

// PanUp and PanDown are no-ops: tcell diffs the whole frame against
// the terminal on Show, so there is no separate scroll-region
// optimization to drive here the way the original hand-rolled
// terminal driver needed one.
func (t *TcellScreen) PanUp(n int)   {}
func (t *TcellScreen) PanDown(n int) {}

func (t *TcellScreen) Mono() bool      { return t.mono }
func (t *TcellScreen) SetMono(m bool) { t.mono = m }

func (t *TcellScreen) Alert() { t.s.Beep() }

func (t *TcellScreen) Show() { t.s.Show() }

// Suspend and Resume let an external editor own the terminal for the
// duration of its run, the same way actions.go drops to a raw exec.Cmd
// around the process's own screen.
func (t *TcellScreen) Suspend() error { return t.s.Suspend() }
func (t *TcellScreen) Resume() error  { return t.s.Resume() }

// Close is safe to call more than once: Run's own shutdown sequence
// and a caller's deferred cleanup can both reach it for the same
// screen.
func (t *TcellScreen) Close() {
	t.closed.Do(func() {
		close(t.done)
		t.s.Fini()
	})
}

// In blocks up to timeout for the next key event. A timeout of zero
// or less blocks indefinitely, used for prompts that must wait for a
// real answer (e.g. the exit confirmation) rather than time out.
func (t *TcellScreen) In(timeout time.Duration) KeyEvent {
	if timeout <= 0 {
		ev, ok := <-t.events
		if !ok {
			return KeyEvent{Nothing: true}
		}
		return translateEvent(ev)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev, ok := <-t.events:
		if !ok {
			return KeyEvent{Nothing: true}
		}
		return translateEvent(ev)
	case <-timer.C:
		return KeyEvent{Nothing: true}
	}
}

func (t *TcellScreen) Poll() (KeyEvent, bool) {
	select {
	case ev, ok := <-t.events:
		if !ok {
			return KeyEvent{}, false
		}
		return translateEvent(ev), true
	default:
		return KeyEvent{}, false
	}
}

func translateEvent(ev tcell.Event) KeyEvent {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return KeyEvent{
			Rune:  e.Rune(),
			Name:  tcell.KeyNames[e.Key()],
			Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
			Alt:   e.Modifiers()&tcell.ModAlt != 0,
			Shift: e.Modifiers()&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return KeyEvent{Resize: true, Width: w, Height: h}
	default:
		return KeyEvent{Nothing: true}
	}
}
