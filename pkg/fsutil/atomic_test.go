package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ditaspace/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and keeps mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "a.xml", "old")
		require.NoError(t, os.Chmod(path, 0o640))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o640))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())
	})

	t.Run("creates with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.xml")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "a.xml", "old")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory fails without side effects", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "a.xml")
		err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0)
		require.Error(t, err)
		assert.NoFileExists(t, path)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := writeFile(t, t.TempDir(), "a.xml", "old")
		require.Error(t, fsutil.WriteAtomic(ctx, path, []byte("new"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(got))
	})

	t.Run("writes through a symlink", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := writeFile(t, dir, "target.xml", "old")
		link := filepath.Join(dir, "link.xml")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}

		require.NoError(t, fsutil.WriteAtomic(context.Background(), link, []byte("new"), 0))

		stat, err := os.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, stat.Mode()&os.ModeSymlink, "link must stay a symlink")

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})
}
