package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"a.gfl", "b.txt", filepath.Join("nested", "c.gfl")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	t.Run("directory walk filters by extension", func(t *testing.T) {
		files, err := FindFilesByExtension(dir, ".gfl")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "a.gfl"),
			filepath.Join(sub, "c.gfl"),
		}, files)
	})

	t.Run("single file is returned regardless of extension", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(dir, "b.txt"), ".gfl")
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "b.txt")}, files)
	})

	t.Run("missing path is an error", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(dir, "absent"), ".gfl")
		assert.Error(t, err)
	})

	t.Run("empty extension panics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = FindFilesByExtension(dir, "")
		})
	})
}
