package bundle

import (
	"os"
	"path/filepath"
)

// Location is a dependency's resolved on-disk origin: either a single module
// file or a package directory.
type Location struct {
	Path  string
	IsDir bool
}

// Resolver maps a top-level module name to its installed location. The
// pipeline depends on this interface, not on any live interpreter's import
// machinery, so tests and callers can substitute their own lookup.
type Resolver interface {
	Resolve(name string) (Location, bool)
}

// IndexResolver resolves names by scanning a static list of site-packages
// roots, in order. A directory named after the module wins over a
// single-file module in the same root.
type IndexResolver struct {
	roots []string
}

// NewIndexResolver creates an IndexResolver over the given roots.
func NewIndexResolver(roots []string) *IndexResolver {
	return &IndexResolver{roots: roots}
}

// Resolve implements Resolver.
func (r *IndexResolver) Resolve(name string) (Location, bool) {
	for _, root := range r.roots {
		dir := filepath.Join(root, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return Location{Path: dir, IsDir: true}, true
		}
		file := filepath.Join(root, name+".py")
		if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
			return Location{Path: file, IsDir: false}, true
		}
	}
	return Location{}, false
}
