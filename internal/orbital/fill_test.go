package orbital

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
)

func TestBuildFillCloudDensityAndNormals(t *testing.T) {
	params := sceneconfig.DefaultOrbitalParams().WithFillPointsPerMeter(2).WithFillPoissonConfidence(0.1)
	cloud := BuildFillCloud(10, params)
	require.Greater(t, cloud.NumVertices(), 0)
	for i := 0; i < cloud.NumVertices(); i++ {
		require.True(t, cloud.HasNormal(i))
		n := cloud.Normals[i]
		assert.Equal(t, float64(0), n[0])
		assert.Equal(t, float64(0), n[1])
		assert.InDelta(t, 0.1, n[2], 1e-9)
	}
}

func TestBuildFillCloudZeroDensityIsEmpty(t *testing.T) {
	params := sceneconfig.DefaultOrbitalParams().WithFillPointsPerMeter(0).WithFillPoissonConfidence(0.1)
	cloud := BuildFillCloud(10, params)
	assert.Equal(t, 0, cloud.NumVertices())
}

func TestHeightAdjustMatchesSurfaceWithinCell(t *testing.T) {
	params := sceneconfig.DefaultOrbitalParams().WithFillPointsPerMeter(1).WithFillPoissonConfidence(0.1)
	fill := BuildFillCloud(4, params)
	surface := [][3]float64{{0, 0, 5}, {0.1, 0.1, 5}}

	HeightAdjust(fill, surface, 1.0, StatMed, 2, 0.5)

	idx := -1
	for i, p := range fill.Positions {
		if p[0] == 0 && p[1] == 0 {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.InDelta(t, 5, fill.Positions[idx][2], 1e-9)
}

func TestHeightAdjustInfillsAwayFromSurface(t *testing.T) {
	params := sceneconfig.DefaultOrbitalParams().WithFillPointsPerMeter(1).WithFillPoissonConfidence(0.1)
	fill := BuildFillCloud(20, params)
	surface := [][3]float64{{0, 0, 3}}

	HeightAdjust(fill, surface, 1.0, StatMax, 30, 1.0)

	far := -1
	for i, p := range fill.Positions {
		if p[0] > 9 && p[1] > 9 {
			far = i
			break
		}
	}
	require.GreaterOrEqual(t, far, 0)
	assert.InDelta(t, 3, fill.Positions[far][2], 1e-6)
}

func TestHeightAdjustNoSurfacePointsIsNoop(t *testing.T) {
	params := sceneconfig.DefaultOrbitalParams().WithFillPointsPerMeter(1).WithFillPoissonConfidence(0.1)
	fill := BuildFillCloud(4, params)
	before := append([][3]float64(nil), fill.Positions...)
	HeightAdjust(fill, nil, 1.0, StatMed, 2, 0.5)
	assert.Equal(t, before, fill.Positions)
}
