package engine

import (
	"context"
	"io"
	"regexp"
	"strconv"

	"github.com/kk-code-lab/qgrep/internal/batch"
	"github.com/kk-code-lab/qgrep/internal/output"
)

// File is one in-memory searchable unit. The reference engine searches
// lines already held in memory — path walking and decompression are
// out of scope here, left to whatever real search engine this
// contract eventually binds to.
type File struct {
	Name  string
	Lines []string
}

// Options configures the reference engine's worker fan-out.
type Options struct {
	// Workers is the number of goroutines searching concurrently; at
	// least 1 is always used.
	Workers int
	// ListFilesOnly emits one row per matching file instead of one row
	// per matching line.
	ListFilesOnly bool
	// Ordered selects the Sync discipline; false means interleaved
	// UNORDERED output.
	Ordered bool
	// Width, when positive, enables the buffered writer's ANSI-aware
	// truncation filter at that column budget.
	Width int
}

// New returns a SearchFunc searching files, distributing them across
// opts.Workers goroutines. Each worker owns one output.BufferedWriter
// attached to a single output.Sync shared for the call, exactly as
// §5's concurrency model describes for real search workers — the fan-
// out itself is batch.Run, the same many-workers-one-Sync discipline
// the non-interactive search path uses.
func New(files []File, opts Options) SearchFunc {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	return func(ctx context.Context, w io.Writer, pattern string) error {
		re, perr := compile(pattern)
		if perr != nil {
			return perr
		}

		chunks := splitFiles(files, workers)
		work := make([]batch.WorkFunc, len(chunks))
		for i, chunk := range chunks {
			chunk := chunk
			work[i] = func(ctx context.Context, bw *output.BufferedWriter) error {
				for _, f := range chunk {
					if err := ctx.Err(); err != nil {
						return err
					}
					searchFile(bw, re, f, opts.ListFilesOnly)
				}
				return nil
			}
		}

		return batch.Run(ctx, w, work, batch.Options{
			Ordered:      opts.Ordered,
			Width:        opts.Width,
			LineBuffered: true,
		})
	}
}

// searchFile writes one tri-NUL-framed row per matching line, or (in
// list mode) one escape-framed row naming the file once it has any
// match, mirroring the two filename framings internal/viewmodel's
// isFilename recognizes.
func searchFile(bw *output.BufferedWriter, re *regexp.Regexp, f File, listOnly bool) {
	matched := false

	for i, line := range f.Lines {
		if !re.MatchString(line) {
			continue
		}
		matched = true
		if listOnly {
			continue
		}

		bw.PutByte(0)
		bw.PutStr(strconv.Itoa(i + 1))
		bw.PutByte(0)
		bw.PutStr(f.Name)
		bw.PutByte(0)
		bw.PutStr(line)
		bw.PutNewline(false)
	}

	if listOnly && matched {
		bw.PutStr("\x1b[35m")
		bw.PutStr(f.Name)
		bw.PutStr("\x1b[0m")
		bw.PutNewline(false)
	}
}

// splitFiles partitions files into up to workers contiguous chunks,
// preserving file order within and across chunks so ORDERED mode
// reproduces the input file order.
func splitFiles(files []File, workers int) [][]File {
	if len(files) == 0 {
		return [][]File{nil}
	}
	if workers > len(files) {
		workers = len(files)
	}

	chunks := make([][]File, 0, workers)
	size := (len(files) + workers - 1) / workers
	for i := 0; i < len(files); i += size {
		end := i + size
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[i:end])
	}
	return chunks
}
