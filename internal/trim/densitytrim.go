package trim

import (
	"errors"
	"math"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// DensityTrim re-trims a reconstructor's "untrimmed" mesh (§6: its
// per-vertex normal length encodes estimated local sample density) at
// the given cutoff level: a face survives iff every one of its
// vertices' normal magnitude meets level. This is the §4.9 step 5
// "re-trim the stored untrimmed mesh at trimmerLevelLenient" density
// cutoff, distinct from the XY mask trims in hulltrim.go.
func DensityTrim(untrimmed *scenegeo.Mesh, level float64) *scenegeo.Mesh {
	if len(untrimmed.Normals) == 0 {
		return untrimmed
	}
	keep := make([]bool, untrimmed.NumFaces())
	for f, face := range untrimmed.Faces {
		keep[f] = density(untrimmed, face[0]) >= level &&
			density(untrimmed, face[1]) >= level &&
			density(untrimmed, face[2]) >= level
	}
	return untrimmed.KeepFaces(keep)
}

func density(m *scenegeo.Mesh, vi int32) float64 {
	n := m.Normals[vi]
	return math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
}

// ErrMaskFailed signals that the §4.9 lenient re-trim mask could not
// be built (boundary polygon degenerate); the caller should log and
// fall back to the strict hull trim only (§7 "mask-failed").
var ErrMaskFailed = errors.New("lenient re-trim: mask construction failed")

// LenientRetrim implements §4.9 end to end: shrink-wrap the surface
// mesh, clean it, extract and offset its largest boundary polygon,
// triangulate that into a mask, density-retrim the solver's untrimmed
// mesh at the lenient cutoff, and clip the result against the mask in
// LENIENT mode (any vertex inside survives).
func LenientRetrim(surfaceMesh, untrimmedMesh *scenegeo.Mesh, shrinkwrapPointsPerMeter, maskOffset float64, nadir [3]float64, lenientLevel float64) (*scenegeo.Mesh, error) {
	wrapped := Shrinkwrap(surfaceMesh, shrinkwrapPointsPerMeter)
	cleaned := Clean(wrapped.Mesh)

	poly := ExtractLargestBoundary(cleaned, nadir)
	if len(poly) < 3 {
		return nil, ErrMaskFailed
	}
	offset := OffsetPolygon(poly, maskOffset)
	mask := BuildLenientMask(offset)
	if mask == nil {
		return nil, ErrMaskFailed
	}

	retrimmed := DensityTrim(untrimmedMesh, lenientLevel)
	out := LenientHullTrim(retrimmed, mask)
	if out.NumFaces() == 0 {
		return nil, ErrMaskFailed
	}
	return out, nil
}
