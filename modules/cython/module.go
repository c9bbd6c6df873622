// Package cython provides the extension-module backends. It compiles staged
// sources ahead-of-time into native CPython extension modules via a
// generated setup script and `setup.py build_ext`.
package cython

import (
	"context"

	"github.com/vk/snakepack/internal/manifest"
	"github.com/vk/snakepack/internal/registry"
	"github.com/vk/snakepack/internal/toolchain"
	"github.com/vk/snakepack/internal/workspace"
)

// buildLibDir and buildTempDir are the workspace subdirectories handed to
// build_ext. Artifacts land under buildLibDir, mirroring the staged package
// structure.
const (
	buildLibDir  = "build_lib"
	buildTempDir = "build_temp"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Backend compiles staged sources into a native extension module with one
// fixed artifact suffix: ".so" for the POSIX shared-library format, ".pyd"
// for the Windows native-module format.
type Backend struct {
	format         string
	artifactSuffix string
}

// Format returns the format name this backend serves.
func (b *Backend) Format() string { return b.format }

// StagedSuffix returns the Cython compilation-source suffix.
func (b *Backend) StagedSuffix() string { return ".pyx" }

// ArtifactSuffix returns the suffix of the produced binary modules.
func (b *Backend) ArtifactSuffix() string { return b.artifactSuffix }

// OutputRoot returns the build_ext output directory inside the workspace.
func (b *Backend) OutputRoot(ws *workspace.Workspace) string {
	return ws.Path(buildLibDir)
}

// Prepare writes the setup.py build descriptor for the staged units and
// returns the build_ext invocation, rooted in the workspace.
func (b *Backend) Prepare(ctx context.Context, ws *workspace.Workspace, units []manifest.Unit, opts registry.BuildOptions) (toolchain.Invocation, error) {
	_, err := manifest.Write(ws.Root(), units, manifest.Options{
		PackageName: opts.PackageName,
		Optimize:    opts.Optimize,
	})
	if err != nil {
		return toolchain.Invocation{}, err
	}

	return toolchain.Invocation{
		Args: []string{
			opts.Python,
			manifest.FileName,
			"build_ext",
			"--build-lib", ws.Path(buildLibDir),
			"--build-temp", ws.Path(buildTempDir),
		},
		Dir: ws.Root(),
	}, nil
}

// Register registers the shared-library and native-module backends.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBackend(&Backend{format: "so", artifactSuffix: ".so"})
	r.RegisterBackend(&Backend{format: "pyd", artifactSuffix: ".pyd"})
}
