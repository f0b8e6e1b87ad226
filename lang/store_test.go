package lang

import (
	"maps"
	"slices"
	"testing"
)

func TestStore(t *testing.T) {
	s := NewStore()

	if _, ok := s.Lookup("a"); ok {
		t.Fatal("empty store defines a")
	}

	s.Set("b", "1")
	s.Set("a", "2")
	s.Append("b", "x")
	s.Append("c", "y")

	if got, want := s.Names(), []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	want := map[string]string{"a": "2", "b": "1x", "c": "y"}
	if got := s.Snapshot(); !maps.Equal(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	var order []string
	for name := range s.All() {
		order = append(order, name)
		if name == "a" {
			break
		}
	}

	if !slices.Equal(order, []string{"b", "a"}) {
		t.Errorf("All() stopped at %v", order)
	}

	names := s.Names()
	names[0] = "z"

	if s.Names()[0] != "b" {
		t.Error("Names() exposes internal slice")
	}
}

func TestStore_ZeroValue(t *testing.T) {
	var s Store

	s.Set("a", "1")

	if got := s.Get("a"); got != "1" {
		t.Errorf("Get(a) = %q, want 1", got)
	}
}
