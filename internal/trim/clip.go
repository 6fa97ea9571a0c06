package trim

import "github.com/roverscene/scenemesh/internal/scenegeo"

// Clip implements §4.10's clip step: a face survives iff all three of
// its vertices' XY positions lie within box. Idempotent by
// construction: re-clipping an already-clipped mesh to the same box
// keeps every surviving face.
func Clip(m *scenegeo.Mesh, box scenegeo.BoundingBox) *scenegeo.Mesh {
	keep := make([]bool, m.NumFaces())
	for f, face := range m.Faces {
		a := m.Positions[face[0]]
		b := m.Positions[face[1]]
		c := m.Positions[face[2]]
		keep[f] = box.ContainsXY(a[0], a[1]) && box.ContainsXY(b[0], b[1]) && box.ContainsXY(c[0], c[1])
	}
	return m.KeepFaces(keep)
}

// AggregateExtentBox combines the aggregate XY bounding of the input
// points with a configurable square extent, by intersection: the
// effective clip box is never larger than either constraint.
func AggregateExtentBox(pointsBounds scenegeo.BoundingBox, squareExtent float64) scenegeo.BoundingBox {
	if squareExtent <= 0 {
		return pointsBounds
	}
	square := pointsBounds.SquareXY(squareExtent)
	return scenegeo.BoundingBox{
		Min: [3]float64{maxF(pointsBounds.Min[0], square.Min[0]), maxF(pointsBounds.Min[1], square.Min[1]), pointsBounds.Min[2]},
		Max: [3]float64{minF(pointsBounds.Max[0], square.Max[0]), minF(pointsBounds.Max[1], square.Max[1]), pointsBounds.Max[2]},
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
