// Package pyinstaller provides the executable backend. It freezes a staged
// entry script into a standalone executable via `python -m PyInstaller`.
package pyinstaller

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/vk/snakepack/internal/manifest"
	"github.com/vk/snakepack/internal/registry"
	"github.com/vk/snakepack/internal/toolchain"
	"github.com/vk/snakepack/internal/workspace"
)

// distDir and workDir are the workspace subdirectories handed to
// PyInstaller; artifacts land under distDir.
const (
	distDir = "dist"
	workDir = "build_temp"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Backend freezes the entry script into an executable. PyInstaller consumes
// plain .py sources, so staging performs no suffix rewrite.
type Backend struct{}

// Format returns the format name this backend serves.
func (b *Backend) Format() string { return "exe" }

// StagedSuffix returns the suffix PyInstaller compiles; sources keep their
// original suffix.
func (b *Backend) StagedSuffix() string { return workspace.SourceSuffix }

// ArtifactSuffix is ".exe" on Windows and empty elsewhere; suffix-less
// executables are matched by file mode.
func (b *Backend) ArtifactSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// OutputRoot returns the PyInstaller dist directory inside the workspace.
func (b *Backend) OutputRoot(ws *workspace.Workspace) string {
	return ws.Path(distDir)
}

// Prepare selects the entry script and returns the PyInstaller invocation.
// The build descriptor here is the command line itself; PyInstaller derives
// its own spec file under the workspace.
func (b *Backend) Prepare(ctx context.Context, ws *workspace.Workspace, units []manifest.Unit, opts registry.BuildOptions) (toolchain.Invocation, error) {
	entry, err := entryUnit(units, opts.PackageName)
	if err != nil {
		return toolchain.Invocation{}, err
	}

	args := []string{
		opts.Python,
		"-m", "PyInstaller",
		"--name", opts.PackageName,
		"--distpath", ws.Path(distDir),
		"--workpath", ws.Path(workDir),
		"--specpath", ws.Root(),
	}
	if opts.Optimize {
		args = append(args, "--strip", "--optimize", "2")
	}
	if opts.OneFile {
		args = append(args, "--onefile")
	}
	args = append(args, ws.Path(entry.RelPath))

	return toolchain.Invocation{Args: args, Dir: ws.Root()}, nil
}

// entryUnit picks the script PyInstaller should freeze: the only unit if
// there is exactly one, otherwise the unit matching the package name or a
// __main__ module.
func entryUnit(units []manifest.Unit, packageName string) (manifest.Unit, error) {
	if len(units) == 1 {
		return units[0], nil
	}
	for _, u := range units {
		if u.Name == packageName || strings.HasSuffix(u.Name, "__main__") {
			return u, nil
		}
	}
	return manifest.Unit{}, fmt.Errorf("exe format needs a single entry script; name one module %q or __main__", packageName)
}

// Register registers the executable backend.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBackend(&Backend{})
}
