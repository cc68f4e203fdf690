package query

// FlagIndex names one slot in the meta-key flag registry, in the same
// order the interactive option table lists them.
type FlagIndex int

const (
	FlagAfterContext FlagIndex = iota
	FlagBeforeContext
	FlagByteOffset
	FlagContext
	FlagCountLines
	FlagFixedStrings
	FlagBasicRegexp
	FlagWithFilename
	FlagHideFilename
	FlagIgnoreBinary
	FlagIgnoreCase
	FlagSmartCase
	FlagColumnNumber
	FlagListFiles
	FlagLineNumber
	FlagOnlyMatching
	FlagPerlRegexp
	FlagRecurseSymlinks
	FlagRecurse
	FlagInitialTab
	FlagBinaryPattern
	FlagUngroupMatches
	FlagInvertMatches
	FlagWithHexBinary
	FlagWordMatch
	FlagHexBinary
	FlagLineMatch
	FlagEmptyMatches
	FlagAnyLine
	FlagDecompress
	FlagFilenameNUL
	FlagRecurse1
	FlagRecurse2
	FlagRecurse3
	FlagRecurse4
	FlagRecurse5
	FlagRecurse6
	FlagRecurse7
	FlagRecurse8
	FlagRecurse9
	FlagNoHidden
	FlagWithHeading
	FlagSortSize
	FlagSortChanged
	FlagSortCreated
	FlagSortReverse

	numFlags
)

// flagMeta pairs each flag with the meta key that toggles it and the
// label shown on the status line, taken verbatim from the option
// table's (key, text) pairs.
type flagMeta struct {
	key   rune
	label string
}

var flagTable = [numFlags]flagMeta{
	FlagAfterContext:    {'A', "after context"},
	FlagBeforeContext:   {'B', "before context"},
	FlagByteOffset:      {'b', "byte offset"},
	FlagContext:         {'C', "context"},
	FlagCountLines:      {'c', "count lines"},
	FlagFixedStrings:    {'F', "fixed strings"},
	FlagBasicRegexp:     {'G', "basic regex"},
	FlagWithFilename:    {'H', "with filename"},
	FlagHideFilename:    {'h', "hide filename"},
	FlagIgnoreBinary:    {'I', "ignore binary"},
	FlagIgnoreCase:      {'i', "ignore case"},
	FlagSmartCase:       {'j', "smart case"},
	FlagColumnNumber:    {'k', "column number"},
	FlagListFiles:       {'l', "list files"},
	FlagLineNumber:      {'n', "line number"},
	FlagOnlyMatching:    {'o', "only matching"},
	FlagPerlRegexp:      {'P', "perl regex"},
	FlagRecurseSymlinks: {'R', "recurse symlinks"},
	FlagRecurse:         {'r', "recurse"},
	FlagInitialTab:      {'T', "initial tab"},
	FlagBinaryPattern:   {'U', "binary pattern"},
	FlagUngroupMatches:  {'u', "ungroup matches"},
	FlagInvertMatches:   {'v', "invert matches"},
	FlagWithHexBinary:   {'W', "with hex binary"},
	FlagWordMatch:       {'w', "word match"},
	FlagHexBinary:       {'X', "hex binary"},
	FlagLineMatch:       {'x', "line match"},
	FlagEmptyMatches:    {'Y', "empty matches"},
	FlagAnyLine:         {'y', "any line"},
	FlagDecompress:      {'z', "decompress"},
	FlagFilenameNUL:     {'0', "file name + \\0"},
	FlagRecurse1:        {'1', "recurse 1 level"},
	FlagRecurse2:        {'2', "recurse 2 levels"},
	FlagRecurse3:        {'3', "recurse 3 levels"},
	FlagRecurse4:        {'4', "recurse 4 levels"},
	FlagRecurse5:        {'5', "recurse 5 levels"},
	FlagRecurse6:        {'6', "recurse 6 levels"},
	FlagRecurse7:        {'7', "recurse 7 levels"},
	FlagRecurse8:        {'8', "recurse 8 levels"},
	FlagRecurse9:        {'9', "recurse 9 levels"},
	FlagNoHidden:        {'.', "no hidden files"},
	FlagWithHeading:     {'+', "with heading"},
	FlagSortSize:        {'#', "sort by size"},
	FlagSortChanged:     {'$', "sort by changed"},
	FlagSortCreated:     {'@', "sort by created"},
	FlagSortReverse:     {'^', "reverse sort"},
}

// Flags is the interactive flag vector: one bool per FlagIndex,
// mutated only by the UI thread and read by the search worker after a
// join barrier, per the resource model.
type Flags [numFlags]bool

// KeyFor reports the meta key bound to idx.
func KeyFor(idx FlagIndex) rune { return flagTable[idx].key }

// LabelFor reports the status-line label for idx.
func LabelFor(idx FlagIndex) string { return flagTable[idx].label }

// LookupKey finds the flag bound to a meta key, if any.
func LookupKey(key rune) (FlagIndex, bool) {
	for i, m := range flagTable {
		if m.key == key {
			return FlagIndex(i), true
		}
	}
	return 0, false
}

// Toggle flips the flag at idx and clears whichever flags the option
// is mutually exclusive with, mirroring the option table's dispatch
// one key at a time. Returns the flag's new state.
func (f *Flags) Toggle(idx FlagIndex) bool {
	if !f[idx] {
		clearConflicts(f, idx)
	}
	f[idx] = !f[idx]
	return f[idx]
}

func clearConflicts(f *Flags, idx FlagIndex) {
	switch idx {
	case FlagAfterContext:
		f[FlagBeforeContext] = false
		f[FlagContext] = false
		f[FlagOnlyMatching] = false
		f[FlagAnyLine] = false
	case FlagBeforeContext:
		f[FlagAfterContext] = false
		f[FlagContext] = false
		f[FlagOnlyMatching] = false
		f[FlagAnyLine] = false
	case FlagByteOffset, FlagColumnNumber, FlagLineNumber:
		f[FlagCountLines] = false
		f[FlagListFiles] = false
	case FlagContext:
		f[FlagAfterContext] = false
		f[FlagBeforeContext] = false
		f[FlagOnlyMatching] = false
		f[FlagAnyLine] = false
	case FlagCountLines:
		f[FlagByteOffset] = false
		f[FlagColumnNumber] = false
		f[FlagListFiles] = false
		f[FlagLineNumber] = false
	case FlagWithFilename:
		f[FlagHideFilename] = false
	case FlagHideFilename:
		f[FlagWithFilename] = false
	case FlagIgnoreBinary:
		f[FlagWithHexBinary] = false
		f[FlagHexBinary] = false
	case FlagIgnoreCase:
		f[FlagSmartCase] = false
	case FlagSmartCase:
		f[FlagIgnoreCase] = false
	case FlagListFiles:
		f[FlagByteOffset] = false
		f[FlagCountLines] = false
		f[FlagColumnNumber] = false
		f[FlagLineNumber] = false
	case FlagOnlyMatching:
		f[FlagAfterContext] = false
		f[FlagBeforeContext] = false
		f[FlagContext] = false
		f[FlagAnyLine] = false
	case FlagRecurseSymlinks:
		f[FlagRecurse] = false
		clearDepths(f)
	case FlagRecurse:
		f[FlagRecurseSymlinks] = false
		clearDepths(f)
	case FlagWithHexBinary:
		f[FlagIgnoreBinary] = false
		f[FlagHexBinary] = false
	case FlagWordMatch:
		f[FlagLineMatch] = false
	case FlagHexBinary:
		f[FlagIgnoreBinary] = false
		f[FlagWithHexBinary] = false
	case FlagLineMatch:
		f[FlagWordMatch] = false
	case FlagAnyLine:
		f[FlagAfterContext] = false
		f[FlagBeforeContext] = false
		f[FlagContext] = false
		f[FlagOnlyMatching] = false
	case FlagRecurse1, FlagRecurse2, FlagRecurse3, FlagRecurse4,
		FlagRecurse5, FlagRecurse6, FlagRecurse7, FlagRecurse8, FlagRecurse9:
		clearDepths(f)
		if !f[FlagRecurseSymlinks] && !f[FlagRecurse] {
			f[FlagRecurse] = true
		}
	case FlagSortSize:
		f[FlagSortChanged] = false
		f[FlagSortCreated] = false
	case FlagSortChanged:
		f[FlagSortSize] = false
		f[FlagSortCreated] = false
	case FlagSortCreated:
		f[FlagSortSize] = false
		f[FlagSortChanged] = false
	}
}

func clearDepths(f *Flags) {
	f[FlagRecurse1] = false
	f[FlagRecurse2] = false
	f[FlagRecurse3] = false
	f[FlagRecurse4] = false
	f[FlagRecurse5] = false
	f[FlagRecurse6] = false
	f[FlagRecurse7] = false
	f[FlagRecurse8] = false
	f[FlagRecurse9] = false
}

// SortKey reports the active sort key name and whether the reverse
// flag is set, resolving the two duplicated-string comparisons as
// their own distinct, non-duplicated sort keys rather than leaving
// both checks collapsed onto the same literal.
func (f Flags) SortKey() (key string, reverse bool) {
	switch {
	case f[FlagSortSize]:
		key = "size"
	case f[FlagSortChanged]:
		key = "changed"
	case f[FlagSortCreated]:
		key = "created"
	}
	return key, f[FlagSortReverse]
}

// MaxDepth reports the recursion depth selected by the 1-9 flags, or
// 0 if none is set.
func (f Flags) MaxDepth() int {
	for i, idx := 0, FlagRecurse1; idx <= FlagRecurse9; i, idx = i+1, idx+1 {
		if f[idx] {
			return i + 1
		}
	}
	return 0
}
