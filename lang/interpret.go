package lang

import (
	"context"
	"errors"
	"log/slog"
)

// Interpret tokenizes, parses, and evaluates one line.
//
// A parse failure is reported to sink as "Error: in line '<line>': <message>"
// and no statement of the line runs.
func Interpret(
	ctx context.Context,
	line string,
	store *Store,
	sink Sink,
	opts ...Option,
) Result {
	o := makeOptions(opts...)

	prog, err := Parse(Tokenize(line, opts...), opts...)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			perr = newParseError(KindInvalid, err.Error())
		}

		if werr := sink.Emit("Error: in line '" + line + "': " + perr.Error()); werr != nil {
			o.logger.WarnContext(ctx, "report parse error",
				slog.Any("error", ErrOutput.Wrap(werr)),
			)
		}

		return Result{Parse: perr}
	}

	return Evaluate(ctx, prog, store, sink, opts...)
}
