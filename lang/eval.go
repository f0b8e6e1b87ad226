package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Result is the outcome of interpreting one line.
//
// At most one of Parse and Failures is set: a line either fails to parse and
// runs nothing, or parses and runs every statement with each failure
// recorded in order. Both kinds have already been reported to the Sink.
type Result struct {
	Parse    *ParseError
	Failures []*EvalError
	Exit     bool
}

// OK reports whether the line parsed and every statement succeeded.
func (r Result) OK() bool { return r.Parse == nil && len(r.Failures) == 0 }

// Exited reports whether an exit statement ran.
func (r Result) Exited() bool { return r.Exit }

// Err returns the failures of r joined into one error, or nil if r is OK.
func (r Result) Err() error {
	if r.Parse != nil {
		return r.Parse
	}

	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}

	return errors.Join(errs...)
}

// Merge folds the outcome of a later line into r.
func (r Result) Merge(other Result) Result {
	if r.Parse == nil {
		r.Parse = other.Parse
	}

	r.Failures = append(r.Failures, other.Failures...)
	r.Exit = r.Exit || other.Exit

	return r
}

// Evaluate runs the statements of prog in order against store, emitting
// output to sink.
//
// A statement that fails emits "Error: <message>" and evaluation continues
// with the next statement; effects it committed before failing are kept.
// An exit statement stops evaluation and sets Result.Exit, even when its
// farewell line could not be written.
func Evaluate(
	ctx context.Context,
	prog *Program,
	store *Store,
	sink Sink,
	opts ...Option,
) Result {
	o := makeOptions(opts...)

	var res Result

	for i, stmt := range prog.Statements {
		exit, err := execute(stmt, store, sink)
		if err != nil {
			fail := &EvalError{Index: i, Statement: stmt, Err: err}
			res.Failures = append(res.Failures, fail)

			o.logger.DebugContext(ctx, "statement failed", slog.Any("error", fail))

			if werr := sink.Emit("Error: " + err.Error()); werr != nil {
				o.logger.WarnContext(ctx, "report failure",
					slog.Any("error", ErrOutput.Wrap(werr)),
				)
			}

			if !exit {
				continue
			}
		}

		o.logger.Trace("statement", slog.String("stmt", stmt.String()))

		if exit {
			res.Exit = true

			break
		}
	}

	return res
}

// execute runs one statement. A panic is recovered and returned as an
// error wrapping ErrPanic.
func execute(stmt Statement, store *Store, sink Sink) (exit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrPanic.Wrap(fmt.Errorf("%v", r))
		}
	}()

	emit := func(lines ...string) error {
		for _, line := range lines {
			if err := sink.Emit(line); err != nil {
				return ErrOutput.Wrap(err)
			}
		}

		return nil
	}

	switch stmt.Kind {
	case StatementSet:
		store.Set(stmt.Identifier, stmt.Expression.Eval(store))

	case StatementAppend:
		store.Append(stmt.Identifier, stmt.Expression.Eval(store))

	case StatementReverse:
		v, ok := store.Lookup(stmt.Identifier)
		if !ok {
			return false, ErrUndefined.Wrap(errors.New(stmt.Identifier))
		}

		store.Set(stmt.Identifier, ReverseWords(v))

	case StatementList:
		lines := make([]string, 0, store.Len()+1)
		lines = append(lines, "Identifier list ("+strconv.Itoa(store.Len())+"):")

		for name, value := range store.All() {
			lines = append(lines, name+": "+value)
		}

		return false, emit(lines...)

	case StatementExit:
		return true, emit("Exiting the interpreter.")

	case StatementPrint:
		return false, emit(stmt.Expression.Eval(store))

	case StatementPrintLength:
		n := utf8.RuneCountInString(stmt.Expression.Eval(store))

		return false, emit("Length is: " + strconv.Itoa(n))

	case StatementPrintWords:
		return false, emit(append([]string{"Words are:"},
			Words(stmt.Expression.Eval(store))...)...)

	case StatementPrintWordCount:
		n := len(Words(stmt.Expression.Eval(store)))

		return false, emit("Wordcount is: " + strconv.Itoa(n))

	default:
		return false, NewError("unknown statement").Wrap(errors.New(stmt.Kind.String()))
	}

	return false, nil
}

// Eval returns the value of v: the stored text of an identifier (empty if
// undefined), the character a constant names, or the literal text.
func (v Value) Eval(store *Store) string {
	switch v.Kind {
	case ValueIdentifier:
		return store.Get(v.Text)
	case ValueConstant:
		return constants[v.Text]
	default:
		return v.Text
	}
}

// Eval returns the concatenation of every value in e.
func (e Expression) Eval(store *Store) string {
	var sb strings.Builder

	for _, v := range e {
		sb.WriteString(v.Eval(store))
	}

	return sb.String()
}
