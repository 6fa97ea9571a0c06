package orbital

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/sceneconfig"
)

type fakeDEM struct {
	mpp         float64
	lastOuter   scenegeo.Subrect
	lastInner   *scenegeo.Subrect
	lastSub     int
	returnEmpty bool
}

func (f *fakeDEM) GetSubrectPixels(center [2]float64, radius float64) ([][3]float64, error) {
	return nil, nil
}

func (f *fakeDEM) OrganizedMesh(outer scenegeo.Subrect, inner *scenegeo.Subrect, subsample int, withNormals, quadsOnly bool) (*scenegeo.OrganizedMesh, error) {
	f.lastOuter = outer
	f.lastInner = inner
	f.lastSub = subsample
	if f.returnEmpty {
		return nil, nil
	}
	return scenegeo.NewOrganizedMesh(2, 2), nil
}

func (f *fakeDEM) MetersPerPixel() float64 { return f.mpp }

func TestBuildPeripheryCutsOutSurfaceFootprint(t *testing.T) {
	dem := &fakeDEM{mpp: 1.0}
	surfaceBounds := scenegeo.Subrect{MinX: -5, MinY: -5, MaxX: 5, MaxY: 5}
	params := sceneconfig.DefaultOrbitalParams().WithFillPadding(2)

	mesh, err := BuildPeriphery(dem, surfaceBounds, 50, params)
	require.NoError(t, err)
	require.NotNil(t, mesh)

	require.NotNil(t, dem.lastInner)
	assert.Equal(t, -7, dem.lastInner.MinX)
	assert.Equal(t, 7, dem.lastInner.MaxX)
	assert.Equal(t, -50, dem.lastOuter.MinX)
	assert.Equal(t, 50, dem.lastOuter.MaxX)
}

func TestBuildPeripherySkippedWhenCutReachesOuter(t *testing.T) {
	dem := &fakeDEM{mpp: 1.0}
	surfaceBounds := scenegeo.Subrect{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50}
	params := sceneconfig.DefaultOrbitalParams()

	mesh, err := BuildPeriphery(dem, surfaceBounds, 10, params)
	require.NoError(t, err)
	assert.Nil(t, mesh)
}
