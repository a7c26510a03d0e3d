package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(zerolog.Nop())
	require.NoError(t, err)
	return r
}

func TestRegistryEmbeddedDatasets(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, []string{"blobs", "iris"}, r.Names())
	assert.Equal(t, "iris", r.DefaultName())

	iris, err := r.Get("iris")
	require.NoError(t, err)
	assert.Equal(t, 150, iris.Rows())
	assert.Equal(t, "Iris", iris.Title)
	assert.Equal(t, "species", iris.Label)

	numeric := iris.NumericColumns()
	require.Len(t, numeric, 4)
	assert.Equal(t, "Sepal length (cm)", numeric[0].Title)
	assert.Equal(t, "Sepal width (cm)", numeric[1].Title)

	// species_id carries numbers but the manifest pins it categorical.
	id, ok := iris.Column("species_id")
	require.True(t, ok)
	assert.Equal(t, ColumnKindCategorical, id.Kind)

	blobs, err := r.Get("blobs")
	require.NoError(t, err)
	assert.Equal(t, 90, blobs.Rows())
	require.Len(t, blobs.NumericColumns(), 2)
}

func TestRegistryIrisStatistics(t *testing.T) {
	r := newTestRegistry(t)
	iris, err := r.Get("iris")
	require.NoError(t, err)

	sums := iris.Summaries()
	require.Len(t, sums, 4)
	sepal := sums[0]
	assert.Equal(t, "sepal_length", sepal.Column)
	assert.Equal(t, 150, sepal.Count)
	assert.InDelta(t, 5.8433, sepal.Mean, 0.001)
	assert.InDelta(t, 0.8281, sepal.StdDev, 0.001)
	assert.Equal(t, 4.3, sepal.Min)
	assert.Equal(t, 7.9, sepal.Max)
}

func TestRegistryGetUnknown(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Get("wine")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistrySuggest(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, "iris", r.Suggest("irsi"))
	assert.Equal(t, "blobs", r.Suggest("blob"))
	assert.Equal(t, "", r.Suggest("penguins"))
}

func TestRegistryLoadDir(t *testing.T) {
	r := newTestRegistry(t)

	dir := t.TempDir()
	csv := "city,temp\noslo,2.5\nrome,18.1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "temps.csv"), []byte(csv), 0o644))
	manifest := "title: Temperatures\nlabel: city\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "temps.yml"), []byte(manifest), 0o644))

	require.NoError(t, r.LoadDir(dir))

	temps, err := r.Get("temps")
	require.NoError(t, err)
	assert.Equal(t, "Temperatures", temps.Title)
	assert.Equal(t, 2, temps.Rows())
	assert.Equal(t, []string{"blobs", "iris", "temps"}, r.Names())
}

func TestRegistryDirShadowsAndRestores(t *testing.T) {
	r := newTestRegistry(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "iris.csv"), []byte("a\n1\n2\n"), 0o644))
	require.NoError(t, r.LoadDir(dir))

	shadowed, err := r.Get("iris")
	require.NoError(t, err)
	assert.Equal(t, 2, shadowed.Rows())

	// Removing the file and reloading brings the embedded iris back.
	require.NoError(t, os.Remove(filepath.Join(dir, "iris.csv")))
	require.NoError(t, r.LoadDir(dir))

	restored, err := r.Get("iris")
	require.NoError(t, err)
	assert.Equal(t, 150, restored.Rows())
}

func TestRegistryLoadDirSkipsBroken(t *testing.T) {
	r := newTestRegistry(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.csv"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.csv"), []byte("v\n1\n"), 0o644))

	require.NoError(t, r.LoadDir(dir))

	_, err := r.Get("empty")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get("good")
	assert.NoError(t, err)
}

func TestRegistryLoadDirMissing(t *testing.T) {
	r := newTestRegistry(t)
	assert.Error(t, r.LoadDir(filepath.Join(t.TempDir(), "nope")))
}
