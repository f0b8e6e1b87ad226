package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/ardnew/strand/cli/cmd/repl"
	"github.com/ardnew/strand/log"
	"github.com/ardnew/strand/session"
)

// Repl reads statements interactively, one line at a time.
//
// On a terminal the line editor provides history and completion. Otherwise
// lines are read from stdin until it ends or "exit" is entered.
type Repl struct {
	Banner bool `default:"true" help:"Print a banner when the line editor starts." negatable:""`

	in  io.Reader
	out io.Writer
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.in == nil && term.IsTerminal(int(os.Stdin.Fd())) {
		return repl.Run(ctx, cacheDir(ctx), log.Default(), r.Banner,
			sessionOptions(ctx)...)
	}

	return r.lines(ctx)
}

// lines interprets each line of input the way the line editor would.
func (r *Repl) lines(ctx context.Context) error {
	in := r.in
	if in == nil {
		in = os.Stdin
	}

	s := newSession(ctx, session.WithConsole(writer(r.out)))

	scan := bufio.NewScanner(in)
	scan.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1<<20)

	n := 0

	for scan.Scan() {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		n++

		res, err := s.Input(ctx, scan.Text())
		if err != nil {
			return err
		}

		if res.Exited() {
			break
		}
	}

	log.DebugContext(ctx, "repl input complete",
		slog.Int("lines", n),
		slog.Int("variables", s.Store().Len()),
	)

	if err := scan.Err(); err != nil {
		return ErrReadSource.Wrap(err)
	}

	return nil
}
