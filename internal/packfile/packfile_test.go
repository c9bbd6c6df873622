package packfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/snakepack/internal/packfile"
)

// writePackfile is a test helper writing a packfile and returning its path.
func writePackfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snakepack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullBlock(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writePackfile(t, `
package "calc" {
  source        = "calc.py"
  output_dir    = "dist"
  format        = "pyd"
  optimize      = false
  include_deps  = true
  banner_file   = "banner.txt"
  python        = "python3.12"
  site_packages = ["/opt/py/site-packages"]
}
`)

	// --- Act ---
	pkg, err := packfile.Load(path)

	// --- Assert ---
	require.NoError(t, err)
	base := filepath.Dir(path)
	require.Equal(t, "calc", pkg.Name)
	require.Equal(t, filepath.Join(base, "calc.py"), pkg.Source, "relative paths resolve against the packfile dir")
	require.Equal(t, filepath.Join(base, "dist"), pkg.OutputDir)
	require.Equal(t, "pyd", pkg.Format)
	require.NotNil(t, pkg.Optimize)
	require.False(t, *pkg.Optimize)
	require.NotNil(t, pkg.IncludeDeps)
	require.True(t, *pkg.IncludeDeps)
	require.Equal(t, filepath.Join(base, "banner.txt"), pkg.BannerFile)
	require.Equal(t, "python3.12", pkg.Python)
	require.Equal(t, []string{"/opt/py/site-packages"}, pkg.SitePackages)
}

func TestLoad_EnvInterpolation(t *testing.T) {
	// Not parallel: manipulates the process environment.
	t.Setenv("SNAKEPACK_TEST_OUT", "/tmp/pack-out")

	path := writePackfile(t, `
package "calc" {
  source     = "calc.py"
  output_dir = env.SNAKEPACK_TEST_OUT
}
`)

	pkg, err := packfile.Load(path)

	require.NoError(t, err)
	require.Equal(t, "/tmp/pack-out", pkg.OutputDir)
}

func TestLoad_OptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	path := writePackfile(t, `
package "calc" {
  source = "calc.py"
}
`)

	pkg, err := packfile.Load(path)

	require.NoError(t, err)
	require.Nil(t, pkg.Optimize, "unset booleans stay nil so flags can take precedence")
	require.Nil(t, pkg.IncludeDeps)
	require.Empty(t, pkg.Format)
}

func TestLoad_MissingPackageBlock(t *testing.T) {
	t.Parallel()

	path := writePackfile(t, `# just a comment`)

	_, err := packfile.Load(path)

	require.Error(t, err)
	require.Contains(t, err.Error(), "no package block")
}

func TestLoad_SyntaxError(t *testing.T) {
	t.Parallel()

	path := writePackfile(t, `package "calc" { source = `)

	_, err := packfile.Load(path)

	require.Error(t, err)
}
