package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDatasets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ee_2024.csv"), []byte("timestamp,solar_generation,price\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	datasets, err := ListDatasets(dir)
	require.NoError(t, err)
	require.Len(t, datasets, 1, "only plain CSV files are listed")
	assert.Equal(t, "ee_2024", datasets[0].Name)
	assert.Equal(t, filepath.Join(dir, "ee_2024.csv"), datasets[0].Path)
	assert.Positive(t, datasets[0].SizeByte)
}

func TestListDatasetsMissingDir(t *testing.T) {
	datasets, err := ListDatasets(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, datasets)
}

func TestResolveDataset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ee_2024.csv"), []byte("x"), 0o644))

	path, err := ResolveDataset(dir, "ee_2024")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ee_2024.csv"), path)

	_, err = ResolveDataset(dir, "missing")
	assert.Error(t, err)

	for _, name := range []string{"", "../etc/passwd", "a/b", `a\b`} {
		_, err := ResolveDataset(dir, name)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}
