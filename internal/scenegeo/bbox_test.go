package scenegeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyBoundingBoxInvalidUntilExpanded(t *testing.T) {
	b := EmptyBoundingBox()
	assert.False(t, b.Valid())
	b.ExpandToInclude([3]float64{1, 2, 3})
	assert.True(t, b.Valid())
	assert.Equal(t, [3]float64{1, 2, 3}, b.Min)
	assert.Equal(t, [3]float64{1, 2, 3}, b.Max)
}

func TestBoundingBoxUnion(t *testing.T) {
	a := EmptyBoundingBox()
	a.ExpandToInclude([3]float64{0, 0, 0})
	a.ExpandToInclude([3]float64{1, 1, 1})

	b := EmptyBoundingBox()
	b.ExpandToInclude([3]float64{-1, -1, -1})
	b.ExpandToInclude([3]float64{0.5, 0.5, 0.5})

	u := a.Union(b)
	assert.Equal(t, [3]float64{-1, -1, -1}, u.Min)
	assert.Equal(t, [3]float64{1, 1, 1}, u.Max)
}

func TestBoundingBoxUnionWithEmptyReturnsOther(t *testing.T) {
	a := EmptyBoundingBox()
	a.ExpandToInclude([3]float64{2, 2, 2})
	empty := EmptyBoundingBox()
	assert.Equal(t, a, a.Union(empty))
	assert.Equal(t, a, empty.Union(a))
}

func TestBoundingBoxDiagonal(t *testing.T) {
	b := EmptyBoundingBox()
	b.ExpandToInclude([3]float64{0, 0, 0})
	b.ExpandToInclude([3]float64{3, 4, 0})
	assert.InDelta(t, 5, b.Diagonal(), 1e-9)
	assert.InDelta(t, 5, b.DiagonalXY(), 1e-9)
}

func TestBoundingBoxContainsAndCenterXY(t *testing.T) {
	b := EmptyBoundingBox()
	b.ExpandToInclude([3]float64{0, 0, 0})
	b.ExpandToInclude([3]float64{10, 20, 0})
	assert.True(t, b.ContainsXY(5, 5))
	assert.False(t, b.ContainsXY(11, 5))
	cx, cy := b.CenterXY()
	assert.InDelta(t, 5, cx, 1e-9)
	assert.InDelta(t, 10, cy, 1e-9)
}

func TestBoundingBoxSquareXY(t *testing.T) {
	b := EmptyBoundingBox()
	b.ExpandToInclude([3]float64{0, 0, -1})
	b.ExpandToInclude([3]float64{10, 4, 5})
	sq := b.SquareXY(20)
	cx, cy := b.CenterXY()
	assert.InDelta(t, cx-10, sq.Min[0], 1e-9)
	assert.InDelta(t, cy-10, sq.Min[1], 1e-9)
	assert.Equal(t, b.Min[2], sq.Min[2])
	assert.Equal(t, b.Max[2], sq.Max[2])
}

func TestBoundingBoxIntersectsXY(t *testing.T) {
	a := EmptyBoundingBox()
	a.ExpandToInclude([3]float64{0, 0, 0})
	a.ExpandToInclude([3]float64{1, 1, 0})
	b := EmptyBoundingBox()
	b.ExpandToInclude([3]float64{0.5, 0.5, 99})
	b.ExpandToInclude([3]float64{2, 2, 99})
	assert.True(t, a.IntersectsXY(b))

	c := EmptyBoundingBox()
	c.ExpandToInclude([3]float64{5, 5, 0})
	c.ExpandToInclude([3]float64{6, 6, 0})
	assert.False(t, a.IntersectsXY(c))
}
