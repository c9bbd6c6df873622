package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// FileName is the descriptor file name the Cython toolchain expects.
const FileName = "setup.py"

// Options configures descriptor generation.
type Options struct {
	// PackageName is the output package name, derived from the source
	// target's base name.
	PackageName string
	// Optimize enables aggressive numeric and branch optimizations and
	// disables Cython's run-time bounds and overflow safety checks
	// (boundscheck/wraparound off, switch lowering on, -O3 -ffast-math or
	// /O2). This trades run-time safety for speed; code relying on negative
	// indexing or on IndexError from out-of-range access will misbehave.
	// The caller opts in explicitly; it is never the default.
	Optimize bool
}

// setupTemplate renders the Cython build descriptor. Unit paths are emitted
// with forward slashes; cythonize treats them as glob patterns.
var setupTemplate = template.Must(template.New(FileName).Parse(`import os

from setuptools import setup
from Cython.Build import cythonize

extra_compile_args = []
{{- if .Optimize}}
if os.name == "nt":
    extra_compile_args += ["/O2"]
else:
    extra_compile_args += ["-O3", "-ffast-math"]
{{- end}}

setup(
    name={{printf "%q" .PackageName}},
    ext_modules=cythonize(
        [
{{- range .Units}}
            {{printf "%q" .Path}},
{{- end}}
        ],
        compiler_directives={
            "language_level": 3,
{{- if .Optimize}}
            "optimize.use_switch": True,
            "wraparound": False,
            "boundscheck": False,
{{- end}}
        },
    ),
)
`))

type setupData struct {
	PackageName string
	Optimize    bool
	Units       []setupUnit
}

type setupUnit struct {
	Path string
}

// Write renders the build descriptor for the given units into dir and
// returns its absolute path.
func Write(dir string, units []Unit, opts Options) (string, error) {
	data := setupData{
		PackageName: opts.PackageName,
		Optimize:    opts.Optimize,
		Units:       make([]setupUnit, 0, len(units)),
	}
	for _, u := range units {
		data.Units = append(data.Units, setupUnit{Path: filepath.ToSlash(u.RelPath)})
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create build descriptor: %w", err)
	}

	if err := setupTemplate.Execute(f, data); err != nil {
		f.Close()
		return "", fmt.Errorf("render build descriptor: %w", err)
	}
	return path, f.Close()
}
