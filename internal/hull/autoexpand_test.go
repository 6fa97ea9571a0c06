package hull

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoExpandSurfaceExtentScenario(t *testing.T) {
	var pts [][3]float64
	pts = append(pts, [3]float64{90, 0, 0}, [3]float64{-90, 0, 0})
	got := AutoExpandSurfaceExtent(pts, 64, 256, 256)
	assert.Equal(t, 180.0, got)
}

func TestAutoExpandSurfaceExtentCapsAtExtent(t *testing.T) {
	var pts [][3]float64
	pts = append(pts, [3]float64{500, 0, 0})
	got := AutoExpandSurfaceExtent(pts, 64, 2000, 256)
	assert.Equal(t, 256.0, got)
}

func TestAutoExpandSurfaceExtentNoPointsIsNoOp(t *testing.T) {
	got := AutoExpandSurfaceExtent(nil, 64, 256, 256)
	assert.Equal(t, 64.0, got)
}

func TestAutoExpandSurfaceExtentNeverShrinks(t *testing.T) {
	var pts [][3]float64
	pts = append(pts, [3]float64{1, 1, 0})
	got := AutoExpandSurfaceExtent(pts, 64, 256, 256)
	assert.Equal(t, 64.0, got)
}
