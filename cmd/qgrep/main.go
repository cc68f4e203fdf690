// Command qgrep searches a set of files, either once in batch mode
// (printing matches to stdout and exiting) or interactively through a
// terminal query loop, per the CLI surface described in §6.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/kk-code-lab/qgrep/internal/engine"
	"github.com/kk-code-lab/qgrep/internal/logging"
	"github.com/kk-code-lab/qgrep/internal/query"
	"github.com/kk-code-lab/qgrep/internal/screen"
)

// Exit codes per §6: 0 on clean exit with results printed, 1 on no
// results printed, 2 on a pattern compile error at exit time.
const (
	exitOK            = 0
	exitNoResults     = 1
	exitPatternError  = 2
	defaultWorkers    = 4
	notSetQuiescence  = -1
)

func main() {
	app := &cli.App{
		Name:                   "qgrep",
		Usage:                  "search files, once in batch or interactively",
		UseShortOptionHandling: true,
		ArgsUsage:              "[PATTERN] FILE...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "query",
				Aliases:     []string{"Q"},
				Usage:       "enter interactive query mode, value is the idle quiescence delay in hundredths of a second before each re-search",
				Value:       notSetQuiescence,
				DefaultText: "off",
			},
			&cli.BoolFlag{
				Name:  "unordered",
				Usage: "let worker output interleave freely instead of following input file order",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "number of search workers",
				Value:   defaultWorkers,
			},
			&cli.BoolFlag{
				Name:  "no-confirm",
				Usage: "skip the interactive exit confirmation prompt",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		code := exitPatternError
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "qgrep:", msg)
		}
		os.Exit(code)
	}
}

func run(c *cli.Context) error {
	logger, closeLog, err := logging.New(logging.Options{})
	if err != nil {
		return err
	}
	defer closeLog()

	if c.IsSet("query") {
		return runInteractive(c, logger)
	}
	return runBatch(c)
}

func runBatch(c *cli.Context) error {
	args := c.Args().Slice()
	if len(args) < 1 {
		return cli.Exit("pattern required in batch mode", exitPatternError)
	}
	pattern := args[0]

	files, err := loadFiles(args[1:])
	if err != nil {
		return err
	}

	search := engine.New(files, engine.Options{
		Workers: c.Int("workers"),
		Ordered: !c.Bool("unordered"),
	})

	counter := &countingWriter{w: os.Stdout}
	if err := search(context.Background(), counter, pattern); err != nil {
		var perr *engine.PatternError
		if errors.As(err, &perr) {
			return cli.Exit(perr.Message, exitPatternError)
		}
		return err
	}

	if counter.n == 0 {
		return cli.Exit("", exitNoResults)
	}
	return nil
}

func runInteractive(c *cli.Context, logger *log.Logger) error {
	files, err := loadFiles(c.Args().Slice())
	if err != nil {
		return err
	}

	scr, err := screen.NewTcell()
	if err != nil {
		return fmt.Errorf("qgrep: open terminal: %w", err)
	}

	workers := c.Int("workers")
	ordered := !c.Bool("unordered")

	factory := func(pattern string, flags query.Flags) engine.SearchFunc {
		return engine.New(files, engine.Options{
			Workers:       workers,
			Ordered:       ordered,
			ListFilesOnly: flags[query.FlagListFiles],
			Width:         scr.Cols(),
		})
	}

	// The CLI delay is in hundredths of a second; each idle poll tick of
	// the query loop lasts 100ms, so round up to whole ticks.
	opts := query.CLIOptions{
		QuiescenceTicks: (c.Int("query") + 9) / 10,
		NoConfirm:       c.Bool("no-confirm"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop := query.New(scr, factory, opts, logger)
	loop.Run(ctx)
	return nil
}

// countingWriter tracks how many bytes were ever written to w, so
// batch mode can tell "clean exit, nothing matched" apart from "clean
// exit, something matched" without buffering the whole output.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
