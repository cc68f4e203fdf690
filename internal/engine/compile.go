package engine

import (
	"regexp"
	"regexp/syntax"
	"strings"
)

// compile parses pattern the same way regexp.Compile does, but keeps
// the structured *syntax.Error around so a failure can be reported as
// a PatternError with an offset, matching §6(c) of the engine
// contract. regexp/syntax does not track a byte position directly, so
// the offset is recovered by locating the offending sub-expression
// text it does report.
func compile(pattern string) (*regexp.Regexp, *PatternError) {
	if _, err := syntax.Parse(pattern, syntax.Perl); err != nil {
		return nil, patternError(pattern, err)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, patternError(pattern, err)
	}
	return re, nil
}

func patternError(pattern string, err error) *PatternError {
	if serr, ok := err.(*syntax.Error); ok {
		offset := 0
		if idx := strings.Index(pattern, serr.Expr); idx >= 0 {
			offset = idx
		}
		return &PatternError{Message: serr.Code.String(), Offset: offset}
	}
	return &PatternError{Message: err.Error(), Offset: 0}
}
