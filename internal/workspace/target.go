package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/snakepack/internal/fsutil"
)

// SourceSuffix is the file suffix a source target must carry.
const SourceSuffix = ".py"

// TargetKind distinguishes single-file targets from directory targets.
type TargetKind int

const (
	KindFile TargetKind = iota
	KindDir
)

// Target describes the validated build input: a single Python file or a
// directory tree of Python files. It is constructed once per invocation and
// immutable afterwards.
type Target struct {
	// Path is the absolute path to the source file or directory.
	Path string
	// Kind reports whether Path is a file or a directory.
	Kind TargetKind
	// Stem is the base name without suffix; it names the output package and
	// the dependency archive.
	Stem string
}

// NewTarget validates a user-supplied source path and returns an immutable
// Target. Validation failures here are input errors: they are reported
// before any workspace directory is created.
func NewTarget(path string) (*Target, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve source path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("source path does not exist: %s", abs)
	}

	if info.IsDir() {
		return &Target{
			Path: abs,
			Kind: KindDir,
			Stem: filepath.Base(abs),
		}, nil
	}

	if !strings.EqualFold(filepath.Ext(abs), SourceSuffix) {
		return nil, fmt.Errorf("source file must be a Python file (%s), got: %s", SourceSuffix, filepath.Ext(abs))
	}

	return &Target{
		Path: abs,
		Kind: KindFile,
		Stem: strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
	}, nil
}

// SourceFiles lists the Python source files the target contributes, sorted
// for deterministic processing. For a file target this is the file itself.
func (t *Target) SourceFiles() ([]string, error) {
	if t.Kind == KindFile {
		return []string{t.Path}, nil
	}
	files, err := fsutil.FindFilesBySuffix(t.Path, SourceSuffix)
	if err != nil {
		return nil, fmt.Errorf("list source files under %s: %w", t.Path, err)
	}
	sort.Strings(files)
	return files, nil
}
