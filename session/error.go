package session

import "github.com/ardnew/strand/lang"

// Sentinel errors.
var (
	ErrTranscript = lang.NewError("transcript")
	ErrScript     = lang.NewError("read script")
	ErrNotFound   = lang.NewError("script not found")
	ErrAssert     = lang.NewError("assertion failed")
)
