package lang

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax    = NewError("syntax error")
	ErrUndefined = NewError("Undefined variable")
	ErrOutput    = NewError("failed to write output")
	ErrPanic     = NewError("statement panicked")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface. The message and the wrapped cause
// are joined by ": ", omitting whichever is empty.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of e carrying attrs in addition to its own.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = slices.Concat(e.attrs, attrs)

	return &c
}

// ParseError reports a malformed statement. A line producing a ParseError
// contributes no statements to evaluation.
type ParseError struct {
	// Found is the kind of the offending token, or KindInvalid if the
	// tokens ran out.
	Found Kind
	// Expected describes what the parser required at that point.
	Expected string
}

// Error returns the human-readable expectation (e.g. "Invalid value: END").
func (e *ParseError) Error() string { return e.Expected }

// Unwrap returns [ErrSyntax].
func (e *ParseError) Unwrap() error { return ErrSyntax }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Expected),
		slog.String("found", e.Found.String()),
	)
}

func newParseError(found Kind, expected string) *ParseError {
	return &ParseError{Found: found, Expected: expected}
}

// EvalError reports a statement that failed during evaluation. Effects
// committed before the failure are kept.
type EvalError struct {
	// Index is the position of the failed statement in its Program.
	Index int
	// Statement is the failed statement.
	Statement Statement
	// Err is the cause, usually wrapping one of the package sentinels.
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string { return e.Err.Error() }

// Unwrap returns the cause.
func (e *EvalError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *EvalError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("index", e.Index),
		slog.String("statement", e.Statement.String()),
		slog.Any("cause", e.Err),
	)
}
