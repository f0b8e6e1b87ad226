// Package session drives the strand interpreter over interactive input and
// script files.
//
// A [Session] owns one [lang.Store] for its whole lifetime, so variables
// assigned by one line or file remain visible to every later line or file.
// Each line is checked for its terminating semicolon before it reaches the
// tokenizer, and every emitted line is written to the console and to a
// plain-text transcript.
//
// Script transcripts are named after their input with [OutputName]
// (input2.txt writes output2.txt). Interactive input is appended to
// output.txt.
package session
