// Package cli contains the command line interface for strand.
//
// # Usage
//
// Without a subcommand, strand reads statements interactively:
//
//	strand
//	strand run input1.txt input2.txt
//	strand fmt json input1.txt
//
// Scripts named on the command line, or with "set <file>.txt" at the
// prompt, are looked up in the working directory and then in each --path
// directory and each directory listed in STRAND_PATH.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory, written by "strand init". Keys are flag names, with hyphens or
// underscores:
//
//	log-level: debug
//	output_dir: transcripts
//
// Command-line flags override configured values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// It adds --pprof-mode and --pprof-dir (default ~/.cache/strand/pprof).
package cli
