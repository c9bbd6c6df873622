package workspace

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/snakepack/internal/ctxlog"
	"github.com/vk/snakepack/internal/fsutil"
)

// StageOptions configures how sources are staged into the workspace.
type StageOptions struct {
	// Banner, when non-empty, is prepended to every staged source file as a
	// contiguous prefix block before the original content.
	Banner []byte
	// StagedSuffix is the suffix the toolchain expects its compilation
	// sources to carry. Staged files are renamed from SourceSuffix to this
	// suffix; when equal, no rename happens.
	StagedSuffix string
}

// Stage copies the target's sources into the workspace, injects the banner,
// and rewrites source suffixes. It returns the workspace-relative paths of
// the staged compilation sources, sorted.
//
// For a directory target the entire tree is copied, preserving relative
// structure, so non-Python package files travel with the sources. The
// original target is never modified.
func (w *Workspace) Stage(ctx context.Context, target *Target, opts StageOptions) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	if target.Kind == KindDir {
		if err := fsutil.CopyTree(target.Path, w.Path(target.Stem)); err != nil {
			return nil, fmt.Errorf("stage source tree: %w", err)
		}
	} else {
		if err := fsutil.CopyFile(target.Path, w.Path(filepath.Base(target.Path))); err != nil {
			return nil, fmt.Errorf("stage source file: %w", err)
		}
	}

	sources, err := fsutil.FindFilesBySuffix(w.Root(), SourceSuffix)
	if err != nil {
		return nil, fmt.Errorf("enumerate staged sources: %w", err)
	}

	var staged []string
	for _, src := range sources {
		if len(opts.Banner) > 0 {
			if err := prependBanner(src, opts.Banner); err != nil {
				return nil, fmt.Errorf("inject banner into %s: %w", src, err)
			}
		}

		final := src
		if opts.StagedSuffix != "" && opts.StagedSuffix != SourceSuffix {
			final = strings.TrimSuffix(src, SourceSuffix) + opts.StagedSuffix
			if err := os.Rename(src, final); err != nil {
				return nil, fmt.Errorf("rename staged source: %w", err)
			}
		}

		rel, err := filepath.Rel(w.Root(), final)
		if err != nil {
			return nil, err
		}
		staged = append(staged, rel)
	}
	sort.Strings(staged)

	logger.Info("Sources staged.", "count", len(staged), "workspace", w.Root())
	return staged, nil
}

// prependBanner rewrites the file so the banner appears exactly once, as a
// contiguous block immediately before the original content.
func prependBanner(path string, banner []byte) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Write(banner)
	if !bytes.HasSuffix(banner, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.Write(content)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), info.Mode().Perm())
}
