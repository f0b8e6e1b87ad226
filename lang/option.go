package lang

import "github.com/ardnew/strand/log"

// Option configures the tokenizer, parser, and evaluator.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger receiving trace records from each stage.
// The zero [log.Logger] (the default) discards them.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
