// Package collect locates the binaries a successful toolchain run produced
// and promotes them into the final output directory, preserving their
// package-relative paths.
package collect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/snakepack/internal/ctxlog"
	"github.com/vk/snakepack/internal/fsutil"
)

// ErrNoArtifacts reports a successful compile that produced nothing
// discoverable under the toolchain's output root. This is an invariant
// violation in the staging or descriptor logic, not a user error, and must
// never be swallowed as success.
var ErrNoArtifacts = errors.New("toolchain reported success but no build artifacts were found")

// initFileName is the package-initializer file propagated alongside
// artifacts so multi-module packages stay importable.
const initFileName = "__init__.py"

// Options configures one collection pass.
type Options struct {
	// OutputRoot is the toolchain's output tree to search recursively.
	OutputRoot string
	// OutputDir is the final directory artifacts are promoted into.
	OutputDir string
	// ArtifactSuffix selects matching files. Empty matches suffix-less
	// executables by file mode instead.
	ArtifactSuffix string
	// SourceRoot, when set, is the original source directory whose
	// package-initializer files are propagated into OutputDir.
	SourceRoot string
	// InitPrefix is the path prefix initializer files take inside
	// OutputDir, matching the staged tree's top-level directory name.
	InitPrefix string
}

// Collect copies every matching artifact from the toolchain output tree into
// the output directory at the same relative path, creating intermediate
// directories as needed. For suffixed formats, CPython platform tags are
// normalized away: the artifact's base name is truncated at its first dot
// and the artifact suffix re-applied, so calc.cpython-312-x86_64-linux-gnu.so
// is promoted as calc.so. Suffix-less formats carry no such tags and their
// trees contain bundled libraries with meaningful dotted names, so those
// files keep their original names. It returns the output-relative paths of
// everything it placed into the output directory, promoted artifacts and
// propagated package initializers alike.
func Collect(ctx context.Context, opts Options) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	matches, err := findArtifacts(opts.OutputRoot, opts.ArtifactSuffix)
	if err != nil {
		return nil, fmt.Errorf("search toolchain output %s: %w", opts.OutputRoot, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w (searched %s for %q)", ErrNoArtifacts, opts.OutputRoot, opts.ArtifactSuffix)
	}

	var promoted []string
	for _, match := range matches {
		rel, err := filepath.Rel(opts.OutputRoot, match)
		if err != nil {
			return nil, err
		}

		dstRel := rel
		if opts.ArtifactSuffix != "" {
			dstRel = filepath.Join(filepath.Dir(rel), normalizeBase(filepath.Base(rel), opts.ArtifactSuffix))
		}
		if err := fsutil.CopyFile(match, filepath.Join(opts.OutputDir, dstRel)); err != nil {
			return nil, fmt.Errorf("promote artifact %s: %w", rel, err)
		}
		logger.Info("📦 Artifact collected.", "artifact", dstRel)
		promoted = append(promoted, dstRel)
	}

	if opts.SourceRoot != "" {
		inits, err := propagateInitFiles(ctx, opts.SourceRoot, opts.OutputDir, opts.InitPrefix)
		if err != nil {
			return nil, err
		}
		promoted = append(promoted, inits...)
	}
	sort.Strings(promoted)

	return promoted, nil
}

// findArtifacts lists candidate artifact files under root for the given
// suffix, falling back to executable-mode matching for suffix-less formats.
// A missing output root means the toolchain wrote nowhere we expected; that
// surfaces as zero matches, not as a filesystem error.
func findArtifacts(root, suffix string) ([]string, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if suffix == "" {
		return fsutil.FindExecutables(root)
	}
	return fsutil.FindFilesBySuffix(root, suffix)
}

// normalizeBase strips a CPython platform tag from an artifact file name:
// everything from the first dot onward is replaced by the artifact suffix.
func normalizeBase(base, suffix string) string {
	stem, _, found := strings.Cut(base, ".")
	if !found {
		return base + suffix
	}
	return stem + suffix
}

// propagateInitFiles copies every package-initializer file from the original
// source tree into the output tree at its relative path under initPrefix. It
// returns the output-relative paths of the copied files.
func propagateInitFiles(ctx context.Context, sourceRoot, outputDir, initPrefix string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	inits, err := fsutil.FindFilesBySuffix(sourceRoot, initFileName)
	if err != nil {
		return nil, fmt.Errorf("search package initializers under %s: %w", sourceRoot, err)
	}

	var copied []string
	for _, init := range inits {
		if filepath.Base(init) != initFileName {
			continue
		}
		rel, err := filepath.Rel(sourceRoot, init)
		if err != nil {
			return nil, err
		}
		dstRel := filepath.Join(initPrefix, rel)
		if err := fsutil.CopyFile(init, filepath.Join(outputDir, dstRel)); err != nil {
			return nil, fmt.Errorf("propagate %s: %w", rel, err)
		}
		logger.Debug("Package initializer propagated.", "file", dstRel)
		copied = append(copied, dstRel)
	}
	return copied, nil
}
