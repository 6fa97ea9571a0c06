package spatialindex

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid3DKeyForAnisotropicCells(t *testing.T) {
	g := NewGrid3D(1.0, 2.0)
	assert.Equal(t, CellKey3{X: 0, Y: 0, Z: 0}, g.KeyFor([3]float64{0.5, 0.5, 1.5}))
	assert.Equal(t, CellKey3{X: 0, Y: 0, Z: 1}, g.KeyFor([3]float64{0.5, 0.5, 2.5}))
}

func TestGrid3DNeighbors(t *testing.T) {
	g := NewGrid3D(1.0, 1.0)
	g.Insert(1, [3]float64{0.1, 0.1, 0.1})
	g.Insert(2, [3]float64{1.1, 0.1, 0.1})
	g.Insert(3, [3]float64{9, 9, 9})

	ids := g.Neighbors(CellKey3{X: 0, Y: 0, Z: 0})
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2}, ids)
}
