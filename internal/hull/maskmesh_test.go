package hull

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roverscene/scenemesh/internal/spatialindex"
)

func TestMaskMeshContains(t *testing.T) {
	mask := NewMaskMesh([]spatialindex.Triangle2D{
		{A: [2]float64{0, 0}, B: [2]float64{1, 0}, C: [2]float64{0, 1}},
	})
	assert.True(t, mask.Contains(0.1, 0.1))
	assert.False(t, mask.Contains(5, 5))
}
