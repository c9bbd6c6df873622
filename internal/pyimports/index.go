package pyimports

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed stdlib_modules.txt
var stdlibModulesRaw string

// Index is a read-only set of standard library module names for one
// interpreter version. The analyzer takes it as a parameter so tests and
// callers targeting a different interpreter can substitute their own set.
type Index struct {
	names map[string]struct{}
}

// NewIndex builds an Index from an explicit list of module names.
func NewIndex(names []string) *Index {
	idx := &Index{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		idx.names[name] = struct{}{}
	}
	return idx
}

// Contains reports whether the given top-level module name is part of the
// standard library this index describes.
func (idx *Index) Contains(name string) bool {
	_, ok := idx.names[name]
	return ok
}

// Len returns the number of module names in the index.
func (idx *Index) Len() int {
	return len(idx.names)
}

var defaultIndexOnce = sync.OnceValue(func() *Index {
	var names []string
	for _, line := range strings.Split(stdlibModulesRaw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return NewIndex(names)
})

// DefaultIndex returns the embedded snapshot of CPython 3.12's
// sys.stdlib_module_names. The snapshot is parsed once and shared.
func DefaultIndex() *Index {
	return defaultIndexOnce()
}
