package session

import (
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/strand/lang"
)

// Assert evaluates the boolean expression against the current variables.
//
// Each variable is visible by name as a string. The helpers words(s) and
// reverseWords(s) apply the interpreter's word rules. A name that was never
// assigned evaluates to nil.
func (s *Session) Assert(expression string) (bool, error) {
	env := make(map[string]any, s.store.Len()+2)

	for name, value := range s.store.All() {
		env[name] = value
	}

	env["words"] = lang.Words
	env["reverseWords"] = lang.ReverseWords

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return false, ErrAssert.Wrap(err).
			With(slog.String("expr", expression))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, ErrAssert.Wrap(err).
			With(slog.String("expr", expression))
	}

	ok, _ := out.(bool)

	s.logger.Debug("assert",
		slog.String("expr", expression),
		slog.Bool("ok", ok),
	)

	return ok, nil
}
