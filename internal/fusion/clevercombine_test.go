package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

func cloudOf(points ...[3]float64) *scenegeo.Mesh {
	m := scenegeo.NewPointCloud()
	for _, p := range points {
		m.AddVertex(p)
	}
	return m
}

func TestCombineCapsPerCell(t *testing.T) {
	params := sceneconfig.DefaultCleverCombineParams().WithCellSize(1.0).WithMaxPerCell(2)
	src := SourceCloud{
		Cloud:  cloudOf([3]float64{0.1, 0.1, 0}, [3]float64{0.2, 0.2, 0}, [3]float64{0.3, 0.3, 0}, [3]float64{0.9, 0.9, 0}),
		Origin: [3]float64{0, 0, 0},
	}
	out := Combine([]SourceCloud{src}, params)
	assert.LessOrEqual(t, out.NumVertices(), 2)
}

func TestCombineRanksByOriginProximity(t *testing.T) {
	params := sceneconfig.DefaultCleverCombineParams().WithCellSize(10.0).WithMaxPerCell(1)
	src := SourceCloud{
		Cloud:  cloudOf([3]float64{5, 0, 0}, [3]float64{1, 0, 0}),
		Origin: [3]float64{0, 0, 0},
	}
	out := Combine([]SourceCloud{src}, params)
	assert.Equal(t, 1, out.NumVertices())
	assert.Equal(t, [3]float64{1, 0, 0}, out.Positions[0])
}

func TestCombinePreservesNormals(t *testing.T) {
	params := sceneconfig.DefaultCleverCombineParams().WithCellSize(10.0).WithMaxPerCell(5)
	cloud := scenegeo.NewPointCloud()
	idx := cloud.AddVertex([3]float64{0, 0, 0})
	cloud.SetNormal(idx, [3]float64{0, 0, 1})

	out := Combine([]SourceCloud{{Cloud: cloud, Origin: [3]float64{0, 0, 0}}}, params)
	assert.True(t, out.HasNormal(0))
	assert.Equal(t, [3]float64{0, 0, 1}, out.Normals[0])
}

func TestCombineDisabledConcatenates(t *testing.T) {
	params := sceneconfig.DefaultCleverCombineParams().WithDisabled(true)
	a := cloudOf([3]float64{0, 0, 0})
	b := cloudOf([3]float64{1, 1, 1})
	out := Combine([]SourceCloud{{Cloud: a}, {Cloud: b}}, params)
	assert.Equal(t, 2, out.NumVertices())
}

func TestCombineEveryXYCellHasAtMostCap(t *testing.T) {
	params := sceneconfig.DefaultCleverCombineParams().WithCellSize(1.0).WithMaxPerCell(3)
	var pts [][3]float64
	for i := 0; i < 20; i++ {
		pts = append(pts, [3]float64{0.01 * float64(i), 0.01 * float64(i), 0})
	}
	out := Combine([]SourceCloud{{Cloud: cloudOf(pts...), Origin: [3]float64{0, 0, 0}}}, params)
	assert.LessOrEqual(t, out.NumVertices(), 3)
}
