package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/snakepack/internal/manifest"
)

func TestUnitsFromPaths_DottedNames(t *testing.T) {
	t.Parallel()

	units, err := manifest.UnitsFromPaths([]string{
		"calc.pyx",
		filepath.Join("pkg", "__init__.pyx"),
		filepath.Join("pkg", "sub", "mod.pyx"),
	}, ".pyx")

	require.NoError(t, err)
	require.Equal(t, []manifest.Unit{
		{RelPath: "calc.pyx", Name: "calc"},
		{RelPath: filepath.Join("pkg", "__init__.pyx"), Name: "pkg.__init__"},
		{RelPath: filepath.Join("pkg", "sub", "mod.pyx"), Name: "pkg.sub.mod"},
	}, units)
}

func TestUnitsFromPaths_CollisionIsFatal(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// "a.b.pyx" and "a/b.pyx" both derive the module name "a.b". This is a
	// configuration defect and must fail before the toolchain runs.
	paths := []string{"a.b.pyx", filepath.Join("a", "b.pyx")}

	// --- Act ---
	_, err := manifest.UnitsFromPaths(paths, ".pyx")

	// --- Assert ---
	var dup *manifest.DuplicateUnitError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "a.b", dup.Name)
	require.Contains(t, err.Error(), "a.b.pyx")
	require.Contains(t, err.Error(), filepath.Join("a", "b.pyx"))
}

func TestWrite_OptimizeDirectives(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	units := []manifest.Unit{{RelPath: filepath.Join("pkg", "mod.pyx"), Name: "pkg.mod"}}

	// --- Act ---
	path, err := manifest.Write(dir, units, manifest.Options{PackageName: "pkg", Optimize: true})

	// --- Assert ---
	require.NoError(t, err)
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	setup := string(content)

	require.Contains(t, setup, `name="pkg"`)
	require.Contains(t, setup, `"pkg/mod.pyx"`, "unit paths use forward slashes")
	require.Contains(t, setup, `"boundscheck": False`)
	require.Contains(t, setup, `"wraparound": False`)
	require.Contains(t, setup, `"optimize.use_switch": True`)
	require.Contains(t, setup, `-ffast-math`)
}

func TestWrite_NoOptimizeKeepsSafetyChecks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	units := []manifest.Unit{{RelPath: "calc.pyx", Name: "calc"}}

	path, err := manifest.Write(dir, units, manifest.Options{PackageName: "calc"})

	require.NoError(t, err)
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	setup := string(content)

	require.Contains(t, setup, `"language_level": 3`)
	require.NotContains(t, setup, "boundscheck", "safety checks stay enabled unless the caller opts in")
	require.NotContains(t, setup, "-ffast-math")
}
