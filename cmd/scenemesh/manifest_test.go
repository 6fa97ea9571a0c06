package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscene/scenemesh/internal/pointbuild"
)

func writeTestRaster(t *testing.T, path string, rows, cols int) {
	t.Helper()
	r := pointbuild.NewRaster(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r.Set(row, col, [3]float64{float64(row), float64(col), 1})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pointbuild.EncodeRaster(f, r))
}

func TestLoadWedgesReadsManifestAndRasters(t *testing.T) {
	dir := t.TempDir()
	writeTestRaster(t, filepath.Join(dir, "wedge1.geom"), 4, 4)
	writeTestRaster(t, filepath.Join(dir, "wedge1.norm"), 4, 4)

	manifestJSON := `{
		"wedges": [
			{
				"name": "wedge1",
				"siteDrive": "sd1",
				"geometryFile": "wedge1.geom",
				"normalsFile": "wedge1.norm",
				"reconstructable": true,
				"hasPose": true,
				"pose": [1,0,0,0, 0,1,0,0, 0,0,1,0, 0,0,0,1]
			}
		]
	}`
	manifestPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestJSON), 0o644))

	wedges, err := loadWedges(manifestPath)
	require.NoError(t, err)
	require.Len(t, wedges, 1)
	w := wedges[0]
	assert.Equal(t, "wedge1", w.Name)
	assert.Equal(t, "sd1", w.SiteDrive)
	assert.True(t, w.Reconstructable)
	assert.True(t, w.HasPose)
	require.NotNil(t, w.Geometry)
	require.NotNil(t, w.Normals)
	assert.Equal(t, 4, w.Geometry.Rows)
	assert.Equal(t, [3]float64{2, 3, 1}, w.Geometry.At(2, 3))
}

func TestLoadWedgesRejectsEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"wedges": []}`), 0o644))

	_, err := loadWedges(manifestPath)
	assert.Error(t, err)
}

func TestLoadWedgesMissingGeometryFile(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{
		"wedges": [{"name": "w", "geometryFile": "missing.geom"}]
	}`), 0o644))

	_, err := loadWedges(manifestPath)
	assert.Error(t, err)
}
