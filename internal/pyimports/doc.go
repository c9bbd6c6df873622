// Package pyimports is the dependency analyzer of the pipeline. It scans
// Python source files for import statements and derives the set of
// third-party top-level module names by subtracting an injected standard
// library index.
//
// The scan is deliberately best-effort: a file that cannot be read or
// tokenized contributes nothing and is reported as a warning, never as a
// pipeline failure. The result feeds the optional dependency bundling stage,
// not a precise build graph.
package pyimports
