package atlas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

func quadMesh(minX, minY, maxX, maxY float64) *scenegeo.Mesh {
	m := scenegeo.NewMesh()
	m.AddVertex([3]float64{minX, minY, 0})
	m.AddVertex([3]float64{maxX, minY, 0})
	m.AddVertex([3]float64{maxX, maxY, 0})
	m.AddVertex([3]float64{minX, maxY, 0})
	m.AddFace(0, 1, 2)
	m.AddFace(0, 2, 3)
	return m
}

func TestNaiveAtlaserAssignsUnitSquareUVs(t *testing.T) {
	m := quadMesh(0, 0, 10, 20)
	out, err := NaiveAtlaser{}.Atlas(context.Background(), m, 512)
	require.NoError(t, err)
	require.Len(t, out.UVs, 4)
	assert.InDelta(t, 0, out.UVs[0][0], 1e-6)
	assert.InDelta(t, 0, out.UVs[0][1], 1e-6)
	assert.InDelta(t, 1, out.UVs[2][0], 1e-6)
	assert.InDelta(t, 1, out.UVs[2][1], 1e-6)
}

func TestSplitCentralPeripheral(t *testing.T) {
	m := scenegeo.NewMesh()
	// central triangle
	m.AddVertex([3]float64{0, 0, 0})
	m.AddVertex([3]float64{1, 0, 0})
	m.AddVertex([3]float64{0, 1, 0})
	m.AddFace(0, 1, 2)
	// peripheral triangle, far away
	m.AddVertex([3]float64{100, 100, 0})
	m.AddVertex([3]float64{101, 100, 0})
	m.AddVertex([3]float64{100, 101, 0})
	m.AddFace(3, 4, 5)

	box := scenegeo.BoundingBox{Min: [3]float64{-5, -5, -5}, Max: [3]float64{5, 5, 5}}
	central, peripheral := SplitCentralPeripheral(m, box)
	assert.Equal(t, 1, central.NumFaces())
	assert.Equal(t, 1, peripheral.NumFaces())
}

func TestRescaleUVIntoSubrect(t *testing.T) {
	m := quadMesh(0, 0, 1, 1)
	m.UVs = [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	RescaleUVIntoSubrect(m, [2]float64{0.5, 0.5}, [2]float64{1, 1})
	assert.InDelta(t, 0.5, m.UVs[0][0], 1e-6)
	assert.InDelta(t, 1, m.UVs[2][0], 1e-6)
}

func TestMergeSubmeshesConcatenatesWithOffset(t *testing.T) {
	a := quadMesh(0, 0, 1, 1)
	b := quadMesh(2, 2, 3, 3)
	merged := MergeSubmeshes(a, b)
	assert.Equal(t, 8, merged.NumVertices())
	assert.Equal(t, 4, merged.NumFaces())
	// b's first face should reference offset indices.
	assert.Equal(t, int32(4), merged.Faces[2][0])
}

func TestWarpUVIdentityWhenExponentOne(t *testing.T) {
	m := quadMesh(0, 0, 1, 1)
	m.UVs = [][2]float32{{0.1, 0.2}, {0.6, 0.7}, {0.9, 0.9}, {0.3, 0.4}}
	before := append([][2]float32(nil), m.UVs...)
	WarpUV(m, 0.75, 1)
	assert.Equal(t, before, m.UVs)
}

func TestWarpUVCompressesCentralBand(t *testing.T) {
	m := quadMesh(0, 0, 1, 1)
	m.UVs = [][2]float32{{0.75, 0.75}, {0.375, 0.375}, {0, 0}, {1, 1}}
	WarpUV(m, 0.75, 2)
	// A value exactly at dstFrac stays at dstFrac.
	assert.InDelta(t, 0.75, m.UVs[0][0], 1e-6)
	// Midpoint of the central band compresses toward 0 (exponent>1 pulls down).
	assert.Less(t, float64(m.UVs[1][0]), 0.375)
}

type failingAtlaser struct{ err error }

func (f failingAtlaser) Atlas(_ context.Context, _ *scenegeo.Mesh, _ int) (*scenegeo.Mesh, error) {
	return nil, f.err
}

func TestAtlasWithFallbackFallsBackToHeightmap(t *testing.T) {
	m := quadMesh(0, 0, 1, 1)
	strategies := Strategies{
		UV:        failingAtlaser{err: errors.New("uv atlas unavailable")},
		Heightmap: NaiveAtlaser{},
	}
	out, err := AtlasWithFallback(context.Background(), strategies, m, sceneconfig.AtlasModeUV, 256, time.Second)
	require.NoError(t, err)
	assert.Len(t, out.UVs, 4)
}

func TestAtlasWithFallbackReturnsErrorWhenChainExhausted(t *testing.T) {
	m := quadMesh(0, 0, 1, 1)
	strategies := Strategies{
		Manifold: failingAtlaser{err: errors.New("manifold down")},
		UV:       failingAtlaser{err: errors.New("uv down")},
	}
	_, err := AtlasWithFallback(context.Background(), strategies, m, sceneconfig.AtlasModeManifold, 256, time.Second)
	assert.Error(t, err)
}

func TestBuildAtlasSingleSubmeshWhenNoPeriphery(t *testing.T) {
	m := quadMesh(0, 0, 1, 1)
	box := scenegeo.BoundingBox{Min: [3]float64{-10, -10, -10}, Max: [3]float64{10, 10, 10}}
	out, err := BuildAtlas(context.Background(), Strategies{}, m, sceneconfig.AtlasModeNaive, box, Params{
		TextureResolution: 512,
		DstSurfaceFrac:    0.75,
		WarpExponent:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, m.NumFaces(), out.NumFaces())
	assert.Len(t, out.UVs, 4)
}

func TestBuildAtlasSplitsAndRescalesUVs(t *testing.T) {
	central := quadMesh(0, 0, 1, 1)
	peripheral := quadMesh(100, 100, 101, 101)
	merged := MergeSubmeshes(central, peripheral)

	box := scenegeo.BoundingBox{Min: [3]float64{-5, -5, -5}, Max: [3]float64{5, 5, 5}}
	out, err := BuildAtlas(context.Background(), Strategies{}, merged, sceneconfig.AtlasModeNaive, box, Params{
		TextureResolution: 512,
		DstSurfaceFrac:    0.75,
		WarpExponent:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, out.NumFaces())
	for _, uv := range out.UVs[:4] {
		assert.LessOrEqual(t, float64(uv[0]), 0.75+1e-6)
		assert.LessOrEqual(t, float64(uv[1]), 0.75+1e-6)
	}
	for _, uv := range out.UVs[4:] {
		assert.GreaterOrEqual(t, float64(uv[0]), 0.75-1e-6)
		assert.GreaterOrEqual(t, float64(uv[1]), 0.75-1e-6)
	}
}
