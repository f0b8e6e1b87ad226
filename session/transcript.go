package session

import (
	"bufio"
	"os"
)

const transcriptMode os.FileMode = 0o644

// Transcript is a plain-text file receiving a copy of interpreter output.
// It buffers writes and is flushed by [lang.NewTee] after every line.
type Transcript struct {
	file *os.File
	*bufio.Writer
}

// Append opens the transcript at path for appending, creating it if needed.
func Append(path string) (*Transcript, error) {
	return openTranscript(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

// Create opens the transcript at path, truncating any previous content.
func Create(path string) (*Transcript, error) {
	return openTranscript(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

func openTranscript(path string, flag int) (*Transcript, error) {
	f, err := os.OpenFile(path, flag, transcriptMode)
	if err != nil {
		return nil, ErrTranscript.Wrap(err)
	}

	return &Transcript{file: f, Writer: bufio.NewWriter(f)}, nil
}

// Name returns the path the transcript was opened with.
func (t *Transcript) Name() string { return t.file.Name() }

// Close flushes and closes the transcript.
func (t *Transcript) Close() error {
	ferr := t.Flush()
	cerr := t.file.Close()

	if ferr != nil {
		return ErrTranscript.Wrap(ferr)
	}

	if cerr != nil {
		return ErrTranscript.Wrap(cerr)
	}

	return nil
}
