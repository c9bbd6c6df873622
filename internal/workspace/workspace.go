package workspace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/snakepack/internal/ctxlog"
)

// tempPrefix names the workspace directories this tool creates under the
// system temp root.
const tempPrefix = "snakepack_"

// Workspace is an ephemeral directory tree exclusively owned by one pipeline
// run. It holds the staged source copy, the generated build descriptor, and
// the toolchain's scratch and output directories.
type Workspace struct {
	root string
}

// New creates a fresh workspace directory. The caller owns the returned
// handle and must call Release when the run ends, on success and on error
// paths alike.
func New(ctx context.Context) (*Workspace, error) {
	root, err := os.MkdirTemp("", tempPrefix)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Workspace created.", "root", root)
	return &Workspace{root: root}, nil
}

// Root returns the absolute path of the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Path joins the given elements onto the workspace root.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.root}, elem...)...)
}

// Release removes the workspace tree. It is safe to call more than once;
// subsequent calls are no-ops.
func (w *Workspace) Release(ctx context.Context) error {
	if w.root == "" {
		return nil
	}
	root := w.root
	w.root = ""
	if err := os.RemoveAll(root); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Workspace released.", "root", root)
	return nil
}
