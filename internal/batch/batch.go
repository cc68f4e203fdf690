// Package batch drives the non-interactive search path: a fixed set
// of worker functions, each writing through its own BufferedWriter,
// all funnelled through one shared Sync into a single sink. This is
// the "batch mode after UI exits" half of the data flow — the same
// many-workers-one-sync discipline the event loop's search worker
// uses for a single worker, generalized to N.
package batch

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/kk-code-lab/qgrep/internal/output"
)

// WorkFunc is one worker's unit of work, writing its formatted output
// through bw. Returning a non-nil error cancels every other worker's
// next Sync acquire.
type WorkFunc func(ctx context.Context, bw *output.BufferedWriter) error

// Options configures Run's output discipline.
type Options struct {
	// Ordered selects Sync's ORDERED discipline (worker i's bytes
	// precede worker i+1's); false selects UNORDERED interleaving.
	Ordered bool
	// Width, when positive, enables each writer's truncation filter.
	Width int
	// LineBuffered enables flush-on-newline on each writer; false holds
	// output for an explicit Flush at the end of the worker's run.
	LineBuffered bool
}

// Run spawns one goroutine per entry in work, each attached to its own
// slot on a freshly created Sync, and waits for all of them to finish
// or for the first error to cancel the rest. Workers are assigned
// slots in the order they appear in work, so ORDERED mode reproduces
// that order in the sink regardless of which worker finishes first.
func Run(ctx context.Context, w io.Writer, work []WorkFunc, opts Options) error {
	mode := output.Unordered
	if opts.Ordered {
		mode = output.Ordered
	}
	sync := output.NewSync(mode)

	g, gctx := errgroup.WithContext(ctx)

	for _, fn := range work {
		fn := fn
		slot := sync.NextSlot()

		g.Go(func() error {
			bw := output.New(w, opts.LineBuffered, opts.Width)
			bw.SyncOn(sync, slot)
			defer bw.End()

			if err := gctx.Err(); err != nil {
				sync.Cancel()
				return err
			}

			if err := fn(gctx, bw); err != nil {
				sync.Cancel()
				return err
			}

			bw.Release(opts.LineBuffered)
			return nil
		})
	}

	return g.Wait()
}
