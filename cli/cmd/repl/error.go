package repl

import "errors"

var (
	// ErrOutOfBounds is returned for a history index with no entry.
	ErrOutOfBounds = errors.New("history index out of range")

	// ErrEditDeclined is returned when the user abandons an edit that did
	// not parse.
	ErrEditDeclined = errors.New("edit declined")
)
