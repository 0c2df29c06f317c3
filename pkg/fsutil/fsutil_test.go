package fsutil_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/fsutil"
)

func writeTemp(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "# Title\n", 0o644)

	content, info, err := fsutil.ReadFile(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(8), info.Size)
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := fsutil.ReadFile(t.Context(), filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(t.Context(), t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "one\n", 0o644)
	_, info, err := fsutil.ReadFile(t.Context(), path)
	require.NoError(t, err)

	modified, err := fsutil.CheckModified(t.Context(), info)
	require.NoError(t, err)
	assert.False(t, modified)

	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o644))
	// Same size, so force a different mod time to exercise the hash check too.
	require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

	modified, err = fsutil.CheckModified(t.Context(), info)
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, os.Remove(path))
	modified, err = fsutil.CheckModified(t.Context(), info)
	require.NoError(t, err)
	assert.True(t, modified)

	_, err = fsutil.CheckModified(t.Context(), nil)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	require.NoError(t, fsutil.WriteAtomic(t.Context(), path, []byte("new\n"), 0))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	}
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := fsutil.WriteAtomic(t.Context(), filepath.Join(t.TempDir(), "nope", "out.md"), []byte("x"), 0)
	require.Error(t, err)
}

func TestReplace(t *testing.T) {
	t.Parallel()

	t.Run("writes changed content and keeps mode", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "*  a\n", 0o600)
		original, info, err := fsutil.ReadFile(t.Context(), path)
		require.NoError(t, err)

		written, err := fsutil.Replace(t.Context(), info, original, []byte("- a\n"))
		require.NoError(t, err)
		assert.True(t, written)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "- a\n", string(got))

		if runtime.GOOS != "windows" {
			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
		}
	})

	t.Run("unchanged content is not written", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "- a\n", 0o644)
		original, info, err := fsutil.ReadFile(t.Context(), path)
		require.NoError(t, err)

		written, err := fsutil.Replace(t.Context(), info, original, []byte("- a\n"))
		require.NoError(t, err)
		assert.False(t, written)
	})

	t.Run("concurrent edit is detected", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "*  a\n", 0o644)
		original, info, err := fsutil.ReadFile(t.Context(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("edited elsewhere\n"), 0o644))
		later := info.ModTime.Add(time.Second)
		require.NoError(t, os.Chtimes(path, later, later))

		written, err := fsutil.Replace(t.Context(), info, original, []byte("- a\n"))
		require.ErrorIs(t, err, fsutil.ErrModified)
		assert.False(t, written)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "edited elsewhere\n", string(got))
	})
}
