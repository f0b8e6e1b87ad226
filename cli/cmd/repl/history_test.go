package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, line := range []string{"set a \"x\";", "print a;", "  ", "list;"} {
		if err := h.Add(line); err != nil {
			t.Fatalf("Add(%q): %v", line, err)
		}
	}

	want := []string{"set a \"x\";", "print a;", "list;"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %q, want %q", got, want)
	}

	// Re-entering an older line moves it to the end and rewrites the file.
	if err := h.Add("print a;"); err != nil {
		t.Fatal(err)
	}

	want = []string{"set a \"x\";", "list;", "print a;"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() after repeat = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %q, want %q", got, want)
	}

	if line, err := reloaded.At(0); err != nil || line != want[0] {
		t.Errorf("At(0) = %q, %v", line, err)
	}

	if _, err := reloaded.At(3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("At(3) error = %v, want ErrOutOfBounds", err)
	}
}

func TestHistory_RepeatLast(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for range 3 {
		if err := h.Add("list;"); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "list;\n" {
		t.Errorf("history file = %q", data)
	}
}

func TestHistory_Browse(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, ok := h.Prev(); ok {
		t.Fatal("Prev() on empty history reported an entry")
	}

	for _, line := range []string{"a;", "b;"} {
		if err := h.Add(line); err != nil {
			t.Fatal(err)
		}
	}

	if line, ok := h.Prev(); !ok || line != "b;" {
		t.Errorf("Prev() = %q, %v", line, ok)
	}

	if pos, ok := h.Browsing(); !ok || pos != 1 {
		t.Errorf("Browsing() = %d, %v", pos, ok)
	}

	if line, ok := h.Prev(); !ok || line != "a;" {
		t.Errorf("second Prev() = %q, %v", line, ok)
	}

	if line, ok := h.Next(); !ok || line != "b;" {
		t.Errorf("Next() = %q, %v", line, ok)
	}

	if _, ok := h.Next(); ok {
		t.Error("Next() past newest reported an entry")
	}

	h.Prev()
	h.Rewind()

	if _, ok := h.Browsing(); ok {
		t.Error("Browsing() after Rewind")
	}
}
