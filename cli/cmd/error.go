package cmd

import "github.com/ardnew/strand/lang"

// Command errors share the interpreter's error type, so errors.Is matches a
// sentinel through any number of Wrap and With calls, and a logged error
// carries its attributes.
var (
	ErrJSONMarshal  = lang.NewError("marshal JSON")
	ErrYAMLMarshal  = lang.NewError("marshal YAML")
	ErrWriteConfig  = lang.NewError("write configuration file")
	ErrFileExists   = lang.NewError("file exists (use --force to overwrite)")
	ErrReadSource   = lang.NewError("read source")
	ErrScriptFailed = lang.NewError("script reported errors")
	ErrAssertFailed = lang.NewError("assertion failed")
	ErrWatch        = lang.NewError("watch scripts")
)
