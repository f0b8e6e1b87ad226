package lang

import (
	"iter"
	"maps"
	"slices"
)

// Store maps identifiers to string values for the lifetime of a session.
// Entries are never removed and iterate in the order they were first
// assigned. A Store is not safe for concurrent use.
type Store struct {
	index map[string]int
	names []string
	value []string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Len returns the number of variables defined.
func (s *Store) Len() int { return len(s.names) }

// Lookup returns the value of name and whether it is defined.
func (s *Store) Lookup(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}

	return s.value[i], true
}

// Get returns the value of name, or the empty string if it is undefined.
func (s *Store) Get(name string) string {
	v, _ := s.Lookup(name)

	return v
}

// Set assigns value to name, defining it if necessary.
func (s *Store) Set(name, value string) {
	if i, ok := s.index[name]; ok {
		s.value[i] = value

		return
	}

	if s.index == nil {
		s.index = make(map[string]int)
	}

	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	s.value = append(s.value, value)
}

// Append concatenates value onto name, defining it if necessary.
func (s *Store) Append(name, value string) {
	s.Set(name, s.Get(name)+value)
}

// All returns an iterator over every variable in insertion order.
func (s *Store) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i, name := range s.names {
			if !yield(name, s.value[i]) {
				return
			}
		}
	}
}

// Names returns the variable names in insertion order.
func (s *Store) Names() []string { return slices.Clone(s.names) }

// Snapshot returns a copy of the variables as a map.
func (s *Store) Snapshot() map[string]string {
	return maps.Collect(s.All())
}
