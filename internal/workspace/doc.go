// Package workspace owns the ephemeral build tree for a single pipeline run.
// It validates the source target, stages a copy of the sources into an
// isolated temporary directory (with optional banner injection and suffix
// rewriting), and guarantees removal of the tree through an explicit Release
// call on every exit path.
//
// The original source target is never written to; every staged file is a
// copy.
package workspace
