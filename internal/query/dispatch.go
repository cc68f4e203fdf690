package query

import "github.com/kk-code-lab/qgrep/internal/screen"

// dispatch routes one key event to the editor, the row view, or a
// control action, following Query::operator()'s key switch.
func (l *Loop) dispatch(ev screen.KeyEvent) {
	defer l.render()

	switch {
	case l.metaPending:
		l.metaPending = false
		if ev.Rune != 0 && l.Model.Select == -1 {
			l.meta(ev.Rune)
		} else {
			l.Screen.Alert()
		}
		return

	case l.verbatim:
		l.verbatim = false
		if ev.Rune != 0 && ev.Rune < 0x80 {
			l.Editor.Insert(string(ev.Rune))
			l.panEdit()
		}
		return

	case ev.Alt:
		l.dispatchMeta(ev)
		return
	}

	switch ev.Name {
	case "Up":
		l.Model.Up()
	case "Down":
		l.Model.Down(l.visibleRows())
	case "PgUp":
		l.Model.PgUp(l.visibleRows(), false)
	case "PgDn":
		l.Model.PgDn(l.visibleRows(), false)
	case "Left":
		l.editOnly(func() { l.Editor.Move(l.Editor.Col - 1) })
	case "Right":
		l.editOnly(func() { l.Editor.Move(l.Editor.Col + 1) })
	case "Home":
		l.editOnly(l.Editor.Home)
	case "End":
		l.editOnly(l.Editor.End)
	case "Tab":
		l.viewSkip += 8
	case "Enter":
		l.onEnter()
	case "Backspace", "Backspace2":
		l.onBackspace()
	case "Delete":
		l.onDelete()
	case "Esc":
		l.onEscape()
	case "CtrlC":
		if l.confirmQuit() {
			l.quitting = true
		}
	case "CtrlQ":
		l.quitting = true
	case "CtrlL":
		// Redraw: render() below repaints unconditionally.
	case "CtrlO":
		l.editOnly(func() { l.metaPending = true })
	case "CtrlV":
		if l.Model.Select == -1 {
			l.verbatim = true
		} else {
			l.Screen.Alert()
		}
	case "CtrlK":
		l.editOnly(func() { l.Editor.EraseToEnd(); l.panEdit() })
	case "CtrlU":
		l.editOnly(func() { l.Editor.EraseToStart(); l.panEdit() })
	case "CtrlR":
		l.Model.JumpToMark(l.visibleRows())
	case "CtrlS":
		l.Model.Next(l.visibleRows(), l.exhausted, l.abortOnKey, l.waitMore)
	case "CtrlW":
		l.Model.Back(l.visibleRows())
	case "CtrlX":
		l.Model.SetMark()
	case "CtrlY":
		l.editFile()
	case "CtrlZ":
		l.mode = ModeHelp
	case "CtrlT":
		l.Screen.SetMono(!l.Screen.Mono())
	case "Rune":
		if !ev.Ctrl {
			l.editOnly(func() { l.Editor.Insert(string(ev.Rune)); l.panEdit() })
		}
	default:
		l.Screen.Alert()
	}
}

// dispatchMeta handles Alt-modified arrows (half-page scroll, large
// horizontal pan) and falls back to the flag-toggle meta dispatch for
// any other Alt+rune combination.
func (l *Loop) dispatchMeta(ev screen.KeyEvent) {
	switch ev.Name {
	case "Up":
		l.Model.PgUp(l.visibleRows(), true)
	case "Down":
		l.Model.PgDn(l.visibleRows(), true)
	case "Left":
		l.viewSkip -= l.Screen.Cols() / 2
		if l.viewSkip < 0 {
			l.viewSkip = 0
		}
	case "Right":
		l.viewSkip += l.Screen.Cols() / 2
	default:
		if ev.Rune != 0 && l.Model.Select == -1 {
			l.meta(ev.Rune)
		} else {
			l.Screen.Alert()
		}
	}
}

// editOnly runs fn only while focus is on the edit line, beeping
// otherwise — the repeated "mode_ == Mode::EDIT || select_ == -1"
// guard from the original's key switch.
func (l *Loop) editOnly(fn func()) {
	if l.Model.Select != -1 {
		l.Screen.Alert()
		return
	}
	fn()
}

func (l *Loop) onEnter() {
	if l.Model.Select == -1 {
		if len(l.Model.Rows) > 0 {
			l.Model.Select = l.Model.Row
		} else {
			l.Screen.Alert()
		}
		return
	}
	l.Model.ToggleSelect()
	l.Model.Down(l.visibleRows())
}

func (l *Loop) onBackspace() {
	if l.Model.Select == -1 {
		if l.Editor.Col <= 0 {
			return
		}
		l.Editor.Move(l.Editor.Col - 1)
		l.Editor.Erase(1)
		l.panEdit()
		return
	}
	l.Model.Up()
	l.Model.ToggleSelect()
}

func (l *Loop) onDelete() {
	if l.Model.Select == -1 {
		l.Editor.Erase(1)
		l.panEdit()
		return
	}
	l.Model.Up()
	l.Model.ToggleSelect()
}

func (l *Loop) onEscape() {
	if l.Model.Select == -1 {
		if l.confirmQuit() {
			l.quitting = true
		}
		return
	}
	l.Model.Select = -1
}

// meta toggles the flag bound to key and records the status message
// shown alongside the edit line, mirroring Query::meta.
func (l *Loop) meta(key rune) {
	idx, ok := LookupKey(key)
	if !ok {
		l.Screen.Alert()
		return
	}

	on := l.Flags.Toggle(idx)
	l.Model.ListMode = l.Flags[FlagListFiles]
	l.Editor.Updated = true

	state := "off"
	if on {
		state = "on"
	}
	l.message = LabelFor(idx) + " " + state
}

// panEdit keeps the edit line's cursor visible after any mutation.
func (l *Loop) panEdit() {
	l.Editor.Pan(l.Screen.Cols())
}

// confirmQuit prompts for confirmation unless NoConfirm is set.
func (l *Loop) confirmQuit() bool {
	if l.opts.NoConfirm {
		return true
	}
	l.Screen.Put(0, 0, "Exit? (y/n) [n] ")
	l.Screen.Show()

	ev := l.Screen.In(0)
	return ev.Rune == 'y' || ev.Rune == 'Y'
}

// exhausted, abortOnKey, and waitMore are the hooks Model.Next uses to
// stop scanning for a file boundary without blocking the UI thread.
func (l *Loop) exhausted() bool {
	return l.ingestor == nil || (l.ingestor.EOF && len(l.ingestor.Rows) == len(l.Model.Rows))
}

func (l *Loop) abortOnKey() bool {
	_, ok := l.Screen.Poll()
	return ok
}

func (l *Loop) waitMore() {
	l.update()
}
