package spatialindex

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid2DKeyForBuckets(t *testing.T) {
	g := NewGrid2D(1.0, 0, 0)
	assert.Equal(t, CellKey{Col: 0, Row: 0}, g.KeyFor(0.5, 0.5))
	assert.Equal(t, CellKey{Col: 1, Row: 0}, g.KeyFor(1.5, 0.1))
	assert.Equal(t, CellKey{Col: -1, Row: 0}, g.KeyFor(-0.1, 0.1))
}

func TestGrid2DInsertAndAt(t *testing.T) {
	g := NewGrid2D(1.0, 0, 0)
	g.Insert(1, 0.1, 0.1)
	g.Insert(2, 0.9, 0.9)
	g.Insert(3, 1.5, 0.1)

	ids := g.At(CellKey{Col: 0, Row: 0})
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2}, ids)
}

func TestGrid2DNeighborsCoversOneRing(t *testing.T) {
	g := NewGrid2D(1.0, 0, 0)
	g.Insert(1, 0.5, 0.5)   // (0,0)
	g.Insert(2, 1.5, 0.5)   // (1,0)
	g.Insert(3, -1.5, -1.5) // (-2,-2), out of ring

	ids := g.Neighbors(CellKey{Col: 0, Row: 0})
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2}, ids)
}

func TestGrid2DQueryRadius(t *testing.T) {
	g := NewGrid2D(1.0, 0, 0)
	points := map[int][2]float64{
		1: {0, 0},
		2: {0.5, 0},
		3: {5, 5},
	}
	for id, p := range points {
		g.Insert(id, p[0], p[1])
	}
	coordOf := func(id int) (float64, float64) { return points[id][0], points[id][1] }

	ids := g.QueryRadius(0, 0, 0.6, coordOf)
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2}, ids)
}
