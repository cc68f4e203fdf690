// Package engine defines the search engine's external contract —
// SearchFunc and the errors it raises — plus a reference line-oriented
// implementation that fans work out across worker goroutines sharing
// one output.Sync, giving the output pipeline a concrete producer to
// drive against.
package engine

import (
	"context"
	"fmt"
	"io"
)

// SearchFunc writes formatted result bytes for pattern to w, checking
// ctx for cancellation as it goes. A compile failure returns
// *PatternError; any other failure returns a plain error.
type SearchFunc func(ctx context.Context, w io.Writer, pattern string) error

// PatternError reports a regex compile or semantic error, carrying a
// human-readable message and a best-effort byte offset into pattern.
type PatternError struct {
	Message string
	Offset  int
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Message, e.Offset)
}
