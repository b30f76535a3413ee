package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.hcl"), "")
	writeFile(t, filepath.Join(root, "a.yaml"), "")
	writeFile(t, filepath.Join(root, "nested", "c.hcl"), "")
	writeFile(t, filepath.Join(root, "notes.txt"), "")

	files, err := FindFilesByExtension(root, ".hcl", ".yaml")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.yaml"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)
}

func TestFindFilesByExtension_SingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "problem.hcl")
	writeFile(t, path, "")

	files, err := FindFilesByExtension(path, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)

	files, err = FindFilesByExtension(path, ".yaml")
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestFindFilesByExtension_MissingPath(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
	require.Error(t, err)
}

func TestListFilesAndCopy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Makefile"), "all:")
	writeFile(t, filepath.Join(root, "sub", "skip.cpp"), "")

	files, err := ListFiles(root)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "Makefile")}, files)

	dst := filepath.Join(t.TempDir(), "out", "Makefile")
	require.NoError(t, CopyFile(files[0], dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "all:", string(data))
}
