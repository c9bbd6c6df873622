package bundle_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/snakepack/internal/bundle"
)

func TestProbeSitePackages_ParsesLines(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A fake interpreter that prints two roots and a blank line.
	dir := t.TempDir()
	fake := filepath.Join(dir, "python3")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\necho /opt/py/site-packages\necho\necho /home/u/.local/lib\n"), 0o755))

	// --- Act ---
	roots, err := bundle.ProbeSitePackages(context.Background(), fake)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"/opt/py/site-packages", "/home/u/.local/lib"}, roots)
}

func TestProbeSitePackages_InterpreterFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fake := filepath.Join(dir, "python3")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\nexit 1\n"), 0o755))

	_, err := bundle.ProbeSitePackages(context.Background(), fake)

	require.Error(t, err)
}
