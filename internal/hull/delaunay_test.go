package hull

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelaunaySquareProducesTwoTriangles(t *testing.T) {
	pts := []Point2D{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tris := Delaunay(pts)
	assert.Equal(t, 2, len(tris))
}

func TestDelaunayTrianglesReferenceValidIndices(t *testing.T) {
	pts := []Point2D{{0, 0}, {2, 0}, {1, 2}, {1, -1}, {3, 1}}
	tris := Delaunay(pts)
	assert.NotEmpty(t, tris)
	for _, tr := range tris {
		for _, idx := range []int{tr.A, tr.B, tr.C} {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, len(pts))
		}
	}
}

func TestDelaunayFewerThanThreePointsIsEmpty(t *testing.T) {
	assert.Empty(t, Delaunay([]Point2D{{0, 0}, {1, 1}}))
}

func TestDelaunayCoversConvexHullArea(t *testing.T) {
	pts := []Point2D{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}}
	tris := Delaunay(pts)
	var area float64
	for _, tr := range tris {
		a, b, c := pts[tr.A], pts[tr.B], pts[tr.C]
		signed := 0.5 * ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
		if signed < 0 {
			signed = -signed
		}
		area += signed
	}
	assert.InDelta(t, 16.0, area, 1e-6)
}
