package manifest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Unit is one compilable source file inside the workspace, identified by its
// path relative to the workspace root.
type Unit struct {
	// RelPath is the workspace-relative path of the staged source file.
	RelPath string
	// Name is the derived dotted module name: RelPath with path separators
	// replaced by dots and the staged suffix stripped.
	Name string
}

// DuplicateUnitError reports two staged source files that derive the same
// module name. This is a configuration defect in the source layout and fails
// the build before the toolchain is invoked.
type DuplicateUnitError struct {
	Name       string
	FirstPath  string
	SecondPath string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("module name %q derived from both %q and %q; staged module names must be unique",
		e.Name, e.FirstPath, e.SecondPath)
}

// UnitsFromPaths derives a Unit for every staged source path. Paths are
// expected relative to the workspace root and to end with stagedSuffix.
// A module-name collision returns a *DuplicateUnitError naming both paths.
func UnitsFromPaths(relPaths []string, stagedSuffix string) ([]Unit, error) {
	units := make([]Unit, 0, len(relPaths))
	seen := make(map[string]string, len(relPaths))

	for _, rel := range relPaths {
		name := moduleName(rel, stagedSuffix)
		if first, ok := seen[name]; ok {
			return nil, &DuplicateUnitError{Name: name, FirstPath: first, SecondPath: rel}
		}
		seen[name] = rel
		units = append(units, Unit{RelPath: rel, Name: name})
	}

	return units, nil
}

// moduleName maps a workspace-relative path to its dotted module name.
func moduleName(relPath, stagedSuffix string) string {
	name := strings.TrimSuffix(relPath, stagedSuffix)
	name = filepath.ToSlash(name)
	return strings.ReplaceAll(name, "/", ".")
}
