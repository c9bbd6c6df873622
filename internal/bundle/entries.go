package bundle

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/vk/snakepack/internal/ctxlog"
)

// DepsNamespace is the archive subtree holding bundled third-party files.
const DepsNamespace = "deps"

// Entry is one (source-path, archive-path) pair destined for the archive.
type Entry struct {
	SourcePath  string
	ArchivePath string
}

// DependencyEntries resolves each dependency name and returns archive
// entries for its constituent files under the deps/ namespace. A single-file
// module contributes one entry; a package directory contributes one entry
// per contained file, keyed relative to the package directory's parent so
// the package's own directory name is retained inside the archive.
// Unresolvable names are skipped with a warning.
func DependencyEntries(ctx context.Context, resolver Resolver, deps []string) ([]Entry, error) {
	logger := ctxlog.FromContext(ctx)
	var entries []Entry

	for _, dep := range deps {
		loc, ok := resolver.Resolve(dep)
		if !ok {
			logger.Warn("⚠️ Dependency not resolvable, skipping.", "dependency", dep)
			continue
		}

		if !loc.IsDir {
			entries = append(entries, Entry{
				SourcePath:  loc.Path,
				ArchivePath: path.Join(DepsNamespace, filepath.Base(loc.Path)),
			})
			continue
		}

		parent := filepath.Dir(loc.Path)
		err := filepath.WalkDir(loc.Path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(parent, p)
			if err != nil {
				return err
			}
			entries = append(entries, Entry{
				SourcePath:  p,
				ArchivePath: path.Join(DepsNamespace, filepath.ToSlash(rel)),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk dependency package %s: %w", loc.Path, err)
		}
	}

	return entries, nil
}

// ArtifactEntries maps the collected build outputs to archive entries at the
// archive root, keyed by their output-relative paths. The output directory
// may be a pre-existing directory full of unrelated files (it defaults to
// the source's parent), so only the paths the collector reported are
// bundled, never a walk of the directory.
func ArtifactEntries(artifactDir string, relPaths []string) []Entry {
	entries := make([]Entry, 0, len(relPaths))
	for _, rel := range relPaths {
		entries = append(entries, Entry{
			SourcePath:  filepath.Join(artifactDir, rel),
			ArchivePath: filepath.ToSlash(rel),
		})
	}
	return entries
}
