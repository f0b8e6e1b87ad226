package session

import (
	"io"

	"github.com/ardnew/strand/lang"
	"github.com/ardnew/strand/log"
)

// Option configures a [Session].
type Option func(*Session)

// WithConsole sets the writer receiving live output. Nil disables it.
func WithConsole(w io.Writer) Option {
	return func(s *Session) { s.console = w }
}

// WithTranscript sets the transcript written by [Session.Line] and
// [Session.Script]. [Session.File] and [Session.Input] open their own.
func WithTranscript(w io.Writer) Option {
	return func(s *Session) { s.transcript = w }
}

// WithOutputDir sets the directory where transcript files are created.
func WithOutputDir(dir string) Option {
	return func(s *Session) { s.outputDir = dir }
}

// WithSearchPath adds directories searched, in order, for relative script
// names not found in the working directory.
func WithSearchPath(dir ...string) Option {
	return func(s *Session) { s.search = append(s.search, dir...) }
}

// WithStore replaces the session's empty store, e.g. to continue an
// earlier session.
func WithStore(store *lang.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets the logger for the session and the interpreter.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}
