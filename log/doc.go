// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// Diagnostics are kept separate from interpreter output: the default logger
// writes to stderr, so transcripts and console echo never contain log
// records.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("session started", slog.String("version", pkg.Version()))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Debug], [InfoContext], ...) use a default
// logger that is reconfigured with [Config].
//
// # Supported Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded. Trace is used by the interpreter pipeline for per-token and
// per-statement records.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and [FormatText].
// With [WithPretty] enabled, text output is colorized with lipgloss styles.
package log
