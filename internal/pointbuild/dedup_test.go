package pointbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

func TestDedupMergeCollapsesCloseDuplicates(t *testing.T) {
	m := scenegeo.NewMesh()
	m.AddVertex([3]float64{0, 0, 0})
	m.AddVertex([3]float64{0.001, 0, 0}) // within 0.005m of the first
	m.AddVertex([3]float64{1, 0, 0})     // far away, kept

	out := dedupMerge(m, 0.005)
	assert.Equal(t, 2, out.NumVertices())
}

func TestDedupMergeRespectsMinimumSeparation(t *testing.T) {
	m := scenegeo.NewMesh()
	m.AddVertex([3]float64{0, 0, 0})
	m.AddVertex([3]float64{0.01, 0, 0})

	out := dedupMerge(m, 0.005)
	assert.Equal(t, 2, out.NumVertices())

	for i := 0; i < out.NumVertices(); i++ {
		for j := i + 1; j < out.NumVertices(); j++ {
			dx := out.Positions[i][0] - out.Positions[j][0]
			dy := out.Positions[i][1] - out.Positions[j][1]
			dz := out.Positions[i][2] - out.Positions[j][2]
			dist := dx*dx + dy*dy + dz*dz
			assert.GreaterOrEqual(t, dist, 0.005*0.005)
		}
	}
}

func TestDedupMergeNoEpsilonIsNoOp(t *testing.T) {
	m := scenegeo.NewMesh()
	m.AddVertex([3]float64{0, 0, 0})
	m.AddVertex([3]float64{0, 0, 0})
	out := dedupMerge(m, 0)
	assert.Equal(t, 2, out.NumVertices())
}
