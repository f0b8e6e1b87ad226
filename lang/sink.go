package lang

import (
	"errors"
	"io"
)

// Sink receives each line emitted by the evaluator, without a trailing
// newline, in order.
type Sink interface {
	Emit(line string) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(line string) error

// Emit calls f(line).
func (f SinkFunc) Emit(line string) error { return f(line) }

// Discard is a Sink that drops every line.
var Discard Sink = SinkFunc(func(string) error { return nil })

type flusher interface{ Flush() error }

type syncer interface{ Sync() error }

type tee struct {
	console    io.Writer
	transcript io.Writer
}

// NewTee returns a Sink writing every line, newline terminated, to console
// and then to transcript. Either writer may be nil. The transcript is
// flushed (or synced, for files) after each line.
func NewTee(console, transcript io.Writer) Sink {
	return &tee{console: console, transcript: transcript}
}

func (t *tee) Emit(line string) error {
	b := []byte(line + "\n")

	var errs []error

	if t.console != nil {
		if _, err := t.console.Write(b); err != nil {
			errs = append(errs, err)
		}
	}

	if t.transcript != nil {
		if _, err := t.transcript.Write(b); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, flush(t.transcript))
		}
	}

	return errors.Join(errs...)
}

func flush(w io.Writer) error {
	switch f := w.(type) {
	case flusher:
		return f.Flush()
	case syncer:
		return f.Sync()
	default:
		return nil
	}
}
