package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/snakepack/internal/fsutil"
)

func TestFindFilesBySuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), nil, 0o644))

	files, err := fsutil.FindFilesBySuffix(dir, ".py")

	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "sub", "b.py"),
	}, files)
}

func TestFindFilesBySuffix_EmptySuffixPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = fsutil.FindFilesBySuffix(t.TempDir(), "")
	})
}

func TestFindExecutables(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exe := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0o644))

	files, err := fsutil.FindExecutables(dir)

	require.NoError(t, err)
	require.Equal(t, []string{exe}, files)
}

func TestCopyFile_CreatesParentsAndPreservesMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))
	dst := filepath.Join(dir, "deep", "nested", "dst.sh")

	require.NoError(t, fsutil.CopyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\n", string(content))
}

func TestCopyTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.py"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "b.py"), []byte("b"), 0o644))
	dst := filepath.Join(dir, "dst")

	require.NoError(t, fsutil.CopyTree(src, dst))

	require.FileExists(t, filepath.Join(dst, "a.py"))
	require.FileExists(t, filepath.Join(dst, "sub", "b.py"))
}
