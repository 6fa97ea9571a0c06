package hull

import (
	"math"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// AutoExpandSurfaceExtent implements §4.3: grow surfaceExtent so the
// configured square fully covers every kept point's XY extent, capped
// by maxAutoSurfaceExtent and by the outer extent.
func AutoExpandSurfaceExtent(points [][3]float64, surfaceExtent, maxAutoSurfaceExtent, extent float64) float64 {
	bbox := scenegeo.EmptyBoundingBox()
	for _, p := range points {
		bbox.ExpandToInclude(p)
	}
	if !bbox.Valid() {
		return surfaceExtent
	}

	needed := math.Max(math.Abs(bbox.Min[0]), math.Abs(bbox.Max[0]))
	needed = math.Max(needed, math.Max(math.Abs(bbox.Min[1]), math.Abs(bbox.Max[1])))
	required := math.Ceil(2 * needed)

	expanded := math.Max(surfaceExtent, required)
	if expanded > maxAutoSurfaceExtent {
		expanded = maxAutoSurfaceExtent
	}
	if expanded > extent {
		expanded = extent
	}
	return expanded
}
