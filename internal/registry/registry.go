// Package registry holds the format backends available to an application
// instance. Each backend turns a staged workspace into a toolchain
// invocation for one target binary format; top-level packages under
// modules/ register themselves here.
package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/snakepack/internal/manifest"
	"github.com/vk/snakepack/internal/toolchain"
	"github.com/vk/snakepack/internal/workspace"
)

// BuildOptions carries the per-run settings a backend needs to prepare its
// toolchain invocation.
type BuildOptions struct {
	// PackageName is the output package name derived from the source target.
	PackageName string
	// Python is the interpreter executable used to drive the toolchain.
	Python string
	// Optimize requests aggressive optimization; see manifest.Options.
	Optimize bool
	// OneFile asks executable backends for a single self-contained binary.
	OneFile bool
}

// Backend prepares and describes one target binary format.
type Backend interface {
	// Format is the user-facing format name this backend serves.
	Format() string
	// StagedSuffix is the source suffix the backend's toolchain compiles.
	StagedSuffix() string
	// ArtifactSuffix is the suffix of produced binaries. Empty means the
	// format produces suffix-less executables, matched by file mode instead.
	ArtifactSuffix() string
	// Prepare writes the backend's build descriptor into the workspace and
	// returns the toolchain invocation to run.
	Prepare(ctx context.Context, ws *workspace.Workspace, units []manifest.Unit, opts BuildOptions) (toolchain.Invocation, error)
	// OutputRoot is the directory the toolchain writes artifacts under.
	OutputRoot(ws *workspace.Workspace) string
}

// Module is the interface all format modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry maps format names to their backends for a single application
// instance.
type Registry struct {
	backends map[string]Backend
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// RegisterBackend adds a backend under its format name. Registering two
// backends for one format is a programmer error.
func (r *Registry) RegisterBackend(b Backend) {
	if _, exists := r.backends[b.Format()]; exists {
		panic(fmt.Sprintf("registry: backend for format %q registered twice", b.Format()))
	}
	r.backends[b.Format()] = b
}

// Lookup returns the backend for a format name.
func (r *Registry) Lookup(format string) (Backend, bool) {
	b, ok := r.backends[format]
	return b, ok
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
