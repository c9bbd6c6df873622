// Package manifest generates the build descriptor consumed by the external
// toolchain. It derives one build unit per staged source file, validates that
// the derived module names are unique, and renders the descriptor text
// (a Cython setup script) into the workspace.
package manifest
