package pyimports_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/snakepack/internal/pyimports"
)

func TestDefaultIndex_KnownNames(t *testing.T) {
	t.Parallel()

	idx := pyimports.DefaultIndex()

	require.True(t, idx.Contains("os"))
	require.True(t, idx.Contains("sys"))
	require.True(t, idx.Contains("__future__"))
	require.False(t, idx.Contains("requests"))
	require.False(t, idx.Contains("numpy"))
	require.Greater(t, idx.Len(), 200, "the embedded snapshot should cover the full stdlib")
}

func TestNewIndex_Injectable(t *testing.T) {
	t.Parallel()

	// A caller targeting a different interpreter can substitute its own set.
	idx := pyimports.NewIndex([]string{"onlymod"})

	require.True(t, idx.Contains("onlymod"))
	require.False(t, idx.Contains("os"))
	require.Equal(t, 1, idx.Len())
}
