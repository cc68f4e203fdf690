package screen

import (
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// The width cache below mirrors the teacher's cachedRuneWidth: a fast path for
// ASCII behind a mutex, a sync.Map for the wider rune space that is
// read far more often than written.
var (
	asciiWidthMu sync.RWMutex
	asciiWidth   [128]int8
	wideWidth    sync.Map
)

func cachedRuneWidth(r rune) int {
	if r < 128 {
		asciiWidthMu.RLock()
		w := asciiWidth[r]
		asciiWidthMu.RUnlock()
		if w != 0 {
			return int(w) - 1
		}
		actual := runewidth.RuneWidth(r)
		asciiWidthMu.Lock()
		asciiWidth[r] = int8(actual + 1)
		asciiWidthMu.Unlock()
		return actual
	}

	if cached, ok := wideWidth.Load(r); ok {
		return cached.(int)
	}
	w := runewidth.RuneWidth(r)
	wideWidth.Store(r, w)
	return w
}

// MBCharWidth decodes the rune starting at byte offset i in s and
// returns its display width and the offset of the following rune.
func MBCharWidth(s string, i int) (width int, next int) {
	if i >= len(s) {
		return 0, i
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	return cachedRuneWidth(r), i + size
}

// WChar decodes the rune starting at byte offset i in s and returns
// its code point and the offset of the following rune.
func WChar(s string, i int) (r rune, next int) {
	if i >= len(s) {
		return 0, i
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	return r, i + size
}

// LineWidth sums the display width of every rune in s.
func LineWidth(s string) int {
	total := 0
	for _, r := range s {
		total += cachedRuneWidth(r)
	}
	return total
}
