package fs

import (
	"os"
	"path/filepath"
	"testing"

	"tedit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.o"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	t.Run("sorted with directory suffix", func(t *testing.T) {
		l, err := NewLister(nil)
		require.NoError(t, err)

		names, err := l.List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt", "junk.o", "sub" + string(os.PathSeparator)}, names)
	})

	t.Run("ignore globs filter entries", func(t *testing.T) {
		l, err := NewLister([]string{"*.o"})
		require.NoError(t, err)

		names, err := l.List(dir)
		require.NoError(t, err)
		assert.NotContains(t, names, "junk.o")
		assert.Contains(t, names, "a.txt")
	})

	t.Run("listing a file fails", func(t *testing.T) {
		l, err := NewLister(nil)
		require.NoError(t, err)

		_, err = l.List(filepath.Join(dir, "a.txt"))
		require.Error(t, err)
		assert.True(t, errors.IsNotADirectory(err))
	})

	t.Run("invalid pattern is rejected", func(t *testing.T) {
		_, err := NewLister([]string{"[unclosed"})
		assert.Error(t, err)
	})
}

func TestMakeDir(t *testing.T) {
	base := t.TempDir()

	t.Run("creates directory", func(t *testing.T) {
		target := filepath.Join(base, "fresh")
		require.NoError(t, MakeDir(target))
		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing path fails", func(t *testing.T) {
		target := filepath.Join(base, "dup")
		require.NoError(t, MakeDir(target))

		err := MakeDir(target)
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.AlreadyExists))
	})
}

func TestResolveDir(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "f.txt"), nil, 0o644))

	t.Run("relative path", func(t *testing.T) {
		got, err := ResolveDir(base, "sub")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "sub"), got)
	})

	t.Run("dot dot", func(t *testing.T) {
		got, err := ResolveDir(filepath.Join(base, "sub"), "..")
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})

	t.Run("file is not a directory", func(t *testing.T) {
		_, err := ResolveDir(base, "f.txt")
		require.Error(t, err)
		assert.True(t, errors.IsNotADirectory(err))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := ResolveDir(base, "nope")
		require.Error(t, err)
		assert.True(t, errors.IsNotADirectory(err))
	})
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/base", Resolve("/base", ""))
	assert.Equal(t, "/base/x", Resolve("/base", "x"))
	assert.Equal(t, "/abs", Resolve("/base", "/abs"))
}
