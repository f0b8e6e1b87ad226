package session

import (
	"path/filepath"
	"regexp"
)

// DefaultOutput is the transcript of interactive input and of scripts whose
// name carries no number.
const DefaultOutput = "output.txt"

var numbered = regexp.MustCompile(`^(.*?)(\d+)(\.txt)`)

// OutputName returns the transcript file name for the script named input:
// "output<N>.txt" for the first run of digits N that is followed by ".txt",
// otherwise [DefaultOutput]. Only the base name of input is considered.
func OutputName(input string) string {
	m := numbered.FindStringSubmatch(filepath.Base(input))
	if m == nil {
		return DefaultOutput
	}

	return "output" + m[2] + ".txt"
}
