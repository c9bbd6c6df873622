package pyimports_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/snakepack/internal/pyimports"
)

// writeSource is a test helper that writes a Python source file and returns
// its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyze_StdlibOnlyIsEmpty(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	file := writeSource(t, dir, "tool.py", `
import os
import sys, json
from collections import OrderedDict
from urllib.parse import urlparse
`)

	// --- Act ---
	deps := pyimports.Analyze(context.Background(), []string{file}, pyimports.DefaultIndex())

	// --- Assert ---
	require.Empty(t, deps, "a stdlib-only source must yield an empty dependency set")
}

func TestAnalyze_ThirdPartyFirstSegments(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The same third-party modules imported in both styles must yield the
	// same top-level names.
	dir := t.TempDir()
	plain := writeSource(t, dir, "plain.py", `
import a.b
import c
`)
	from := writeSource(t, dir, "from.py", `
from a.b import thing
from c import other
`)

	// --- Act ---
	depsPlain := pyimports.Analyze(context.Background(), []string{plain}, pyimports.DefaultIndex())
	depsFrom := pyimports.Analyze(context.Background(), []string{from}, pyimports.DefaultIndex())

	// --- Assert ---
	require.Equal(t, []string{"a", "c"}, depsPlain.Sorted())
	require.Equal(t, []string{"a", "c"}, depsFrom.Sorted())
}

func TestAnalyze_RelativeImportsContributeNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	file := writeSource(t, dir, "mod.py", `
from . import sibling
from .helpers import util
from ..parent import thing
`)

	// --- Act ---
	deps := pyimports.Analyze(context.Background(), []string{file}, pyimports.DefaultIndex())

	// --- Assert ---
	require.Empty(t, deps)
}

func TestAnalyze_UnreadableFileIsSkipped(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// One readable file with a dependency plus one missing file: the missing
	// file must degrade to a warning, not abort the analysis.
	dir := t.TempDir()
	good := writeSource(t, dir, "good.py", "import requests\n")
	missing := filepath.Join(dir, "does_not_exist.py")

	// --- Act ---
	deps := pyimports.Analyze(context.Background(), []string{good, missing}, pyimports.DefaultIndex())

	// --- Assert ---
	require.Equal(t, []string{"requests"}, deps.Sorted())
}

func TestScanFile_AliasesAndMultipleNames(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	file := writeSource(t, dir, "mod.py", `
import numpy as np, pandas.core as pc
import requests; import yaml
`)

	// --- Act ---
	names, err := pyimports.ScanFile(file)

	// --- Assert ---
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"numpy", "pandas", "requests", "yaml"}, names)
}

func TestScanFile_DocstringsAreIgnored(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	file := writeSource(t, dir, "mod.py", `
"""
import fake_module
"""
import real_module
`)

	// --- Act ---
	names, err := pyimports.ScanFile(file)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"real_module"}, names)
}

func TestScanFile_IndentedImportsCount(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Function-level imports are still dependencies.
	dir := t.TempDir()
	file := writeSource(t, dir, "mod.py", `
def lazy():
    import heavy_dep
    return heavy_dep
`)

	// --- Act ---
	names, err := pyimports.ScanFile(file)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"heavy_dep"}, names)
}
