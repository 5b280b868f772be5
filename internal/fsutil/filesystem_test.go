package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_GlobSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("x,y\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x,y\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

	got, err := OSFileSystem{}.Glob(filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, got)
}

func TestOSFileSystem_GlobBadPattern(t *testing.T) {
	_, err := OSFileSystem{}.Glob("[")
	assert.Error(t, err)
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	testData := []byte("hello, world")
	require.NoError(t, mfs.WriteFile("/test.txt", testData, 0644))

	data, err := mfs.ReadFile("/test.txt")
	require.NoError(t, err)
	assert.Equal(t, testData, data)
}

func TestMemoryFileSystem_CreateAndOpen(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/out/created.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("created content"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f, err := mfs.Open("/out/created.txt")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "created content", string(data))
	assert.True(t, mfs.Exists("/out"))
}

func TestMemoryFileSystem_OpenMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Open("/missing.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = mfs.ReadFile("/missing.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemoryFileSystem_GlobIsNonRecursive(t *testing.T) {
	mfs := NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("/runs/b.csv", nil, 0644))
	require.NoError(t, mfs.WriteFile("/runs/a.csv", nil, 0644))
	require.NoError(t, mfs.WriteFile("/runs/notes.txt", nil, 0644))
	require.NoError(t, mfs.WriteFile("/runs/Greedy/c.csv", nil, 0644))

	got, err := mfs.Glob("/runs/*.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"/runs/a.csv", "/runs/b.csv"}, got)

	assert.True(t, mfs.Exists("/runs/Greedy"))
}

func TestMemoryFileSystem_MkdirAll(t *testing.T) {
	mfs := NewMemoryFileSystem()
	require.NoError(t, mfs.MkdirAll("/a/b/c", 0755))

	for _, p := range []string{"/a", "/a/b", "/a/b/c"} {
		assert.True(t, mfs.Exists(p), p)
	}
}
