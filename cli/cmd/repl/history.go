package repl

import (
	"bufio"
	"errors"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// History is the list of lines entered at the prompt, oldest first, kept in
// a file with one line per entry. A line entered again moves to the end.
//
// History also tracks a browsing position for Up/Down navigation. The
// position equals Len when the user is not browsing.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []string
	pos     int
}

// NewHistory returns an empty History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those in the history file. A missing file
// leaves the history empty.
func (h *History) Load() error {
	f, err := os.Open(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer f.Close()

	var entries []string

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		if line := strings.TrimSpace(scan.Text()); line != "" {
			entries = append(entries, line)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = entries
	h.pos = len(entries)

	return scan.Err()
}

// Add records line as the newest entry and stops browsing. Blank lines and
// a repeat of the newest entry are ignored.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)

	h.mu.Lock()
	defer h.mu.Unlock()

	defer func() { h.pos = len(h.entries) }()

	if line == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == line) {
		return nil
	}

	if i := slices.Index(h.entries, line); i >= 0 {
		h.entries = append(slices.Delete(h.entries, i, i+1), line)

		return h.save()
	}

	h.entries = append(h.entries, line)

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	_, err = f.WriteString(line + "\n")

	return errors.Join(err, f.Close())
}

// save writes every entry to the history file. h.mu must be held.
func (h *History) save() error {
	data := strings.Join(h.entries, "\n") + "\n"

	return os.WriteFile(h.path, []byte(data), 0o600)
}

// At returns entry i, where 0 is the oldest.
func (h *History) At(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// Prev moves the browsing position one entry back and returns that entry.
// It reports false at the oldest entry or when the history is empty.
func (h *History) Prev() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pos == 0 {
		return "", false
	}

	h.pos--

	return h.entries[h.pos], true
}

// Next moves the browsing position one entry forward and returns that
// entry. Moving past the newest entry stops browsing and reports false.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pos >= len(h.entries)-1 {
		h.pos = len(h.entries)

		return "", false
	}

	h.pos++

	return h.entries[h.pos], true
}

// Rewind stops browsing.
func (h *History) Rewind() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pos = len(h.entries)
}

// Browsing returns the 0-based position of the entry being shown, and
// whether the user is browsing at all.
func (h *History) Browsing() (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.pos, h.pos < len(h.entries)
}
