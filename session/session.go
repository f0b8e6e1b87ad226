package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/strand/lang"
	"github.com/ardnew/strand/log"
)

// Session carries interpreter state across lines and files.
// It is not safe for concurrent use.
type Session struct {
	store      *lang.Store
	console    io.Writer
	transcript io.Writer
	outputDir  string
	search     []string
	logger     log.Logger
}

// New returns a Session with an empty store writing to os.Stdout.
func New(opts ...Option) *Session {
	s := &Session{
		store:   lang.NewStore(),
		console: os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Store returns the session's variable store.
func (s *Session) Store() *lang.Store { return s.store }

// OutputDir returns the directory where transcripts are created.
func (s *Session) OutputDir() string { return s.outputDir }

func (s *Session) langOptions() []lang.Option {
	return []lang.Option{lang.WithLogger(s.logger)}
}

func (s *Session) sink() lang.Sink {
	return lang.NewTee(s.console, s.transcript)
}

// Line interprets one line of a script.
//
// Surrounding whitespace is ignored and blank lines do nothing. A line that
// does not end with a semicolon is reported and skipped.
func (s *Session) Line(ctx context.Context, line string) lang.Result {
	return s.line(ctx, line, s.sink())
}

func (s *Session) line(ctx context.Context, line string, sink lang.Sink) lang.Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return lang.Result{}
	}

	if !strings.HasSuffix(line, ";") {
		perr := &lang.ParseError{
			Found:    lang.KindInvalid,
			Expected: "Every input must end with a semicolon (;)",
		}

		s.emit(ctx, sink, "Error: "+perr.Expected+". Please fix the line: "+line)

		return lang.Result{Parse: perr}
	}

	return lang.Interpret(ctx, line, s.store, sink, s.langOptions()...)
}

// Script interprets each line read from r until the input ends or an exit
// statement runs. The returned error reports only failures reading r.
func (s *Session) Script(ctx context.Context, r io.Reader) (lang.Result, error) {
	return s.script(ctx, r, s.sink())
}

func (s *Session) script(
	ctx context.Context,
	r io.Reader,
	sink lang.Sink,
) (lang.Result, error) {
	var res lang.Result

	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1<<20)

	n := 0

	for scan.Scan() {
		n++

		res = res.Merge(s.line(ctx, scan.Text(), sink))
		if res.Exited() {
			break
		}
	}

	s.logger.DebugContext(ctx, "script",
		slog.Int("lines", n),
		slog.Bool("exit", res.Exited()),
		slog.Int("failures", len(res.Failures)),
	)

	if err := scan.Err(); err != nil {
		return res, ErrScript.Wrap(err)
	}

	return res, nil
}

// File interprets the script at path.
//
// The transcript is created in the output directory with the name given by
// [OutputName], replacing any earlier transcript of the same name, and
// begins with a "Reading commands from <path>..." line.
func (s *Session) File(ctx context.Context, path string) (res lang.Result, err error) {
	resolved, err := s.Resolve(path)
	if err != nil {
		return res, lang.WrapError(err).With(slog.String("script", path))
	}

	f, err := os.Open(resolved)
	if err != nil {
		return res, ErrScript.Wrap(err).With(slog.String("script", path))
	}
	defer f.Close()

	out := filepath.Join(s.outputDir, OutputName(path))

	t, err := Create(out)
	if err != nil {
		return res, err
	}

	defer func() { err = errors.Join(err, t.Close()) }()

	s.logger.DebugContext(ctx, "script open",
		slog.String("script", resolved),
		slog.String("transcript", out),
	)

	sink := lang.NewTee(s.console, t)
	s.emit(ctx, sink, "Reading commands from "+path+"...")

	ra := readahead.NewReader(f)
	defer ra.Close()

	return s.script(ctx, ra, sink)
}

// Input interprets one line typed at the interactive prompt.
//
// "exit" on its own (any case, no semicolon) ends the session, and
// "set <name>.txt" runs the named script with [Session.File]. Any other
// line must end with a semicolon; its output is appended to the
// [DefaultOutput] transcript.
func (s *Session) Input(ctx context.Context, line string) (lang.Result, error) {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return lang.Result{}, nil

	case strings.EqualFold(line, "exit"):
		s.emit(ctx, lang.NewTee(s.console, nil), "Exiting the interpreter.")

		return lang.Result{Exit: true}, nil

	case strings.HasPrefix(line, "set ") && strings.HasSuffix(line, ".txt"):
		name := strings.TrimSpace(strings.TrimPrefix(line, "set "))

		res, err := s.File(ctx, name)
		if errors.Is(err, ErrNotFound) {
			s.emit(ctx, lang.NewTee(s.console, nil),
				"Error: File '"+name+"' not found. Please try again.")

			return res, nil
		}

		return res, err

	case !strings.HasSuffix(line, ";"):
		s.emit(ctx, lang.NewTee(s.console, nil),
			"Error: Every input must end with a semicolon (;). Please try again.")

		return lang.Result{Parse: &lang.ParseError{
			Found:    lang.KindInvalid,
			Expected: "Every input must end with a semicolon (;)",
		}}, nil
	}

	t, err := Append(filepath.Join(s.outputDir, DefaultOutput))
	if err != nil {
		return lang.Result{}, err
	}

	res := lang.Interpret(ctx, line, s.store, lang.NewTee(s.console, t), s.langOptions()...)

	return res, t.Close()
}

func (s *Session) emit(ctx context.Context, sink lang.Sink, line string) {
	if err := sink.Emit(line); err != nil {
		s.logger.WarnContext(ctx, "emit", slog.Any("error", lang.ErrOutput.Wrap(err)))
	}
}
