package pyimports

import "sort"

// Set is an unordered collection of unique top-level module names.
type Set map[string]struct{}

// NewSet creates a Set from the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a name into the set.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether the set holds the given name.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the set's contents as a sorted slice for deterministic
// logging and iteration.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
