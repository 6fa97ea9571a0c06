package trim

import (
	"math"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// RegenerateNormals implements §4.10's normal-regen step: each vertex
// normal becomes the area-weighted sum of its incident face normals,
// normalized. Vertices with no incident face are left untouched.
func RegenerateNormals(m *scenegeo.Mesh) {
	if m.NumVertices() == 0 {
		return
	}
	accum := make([][3]float64, m.NumVertices())
	touched := make([]bool, m.NumVertices())
	for f := 0; f < m.NumFaces(); f++ {
		n := m.FaceNormal(f)
		area := m.FaceArea(f)
		face := m.Faces[f]
		for _, vi := range face {
			accum[vi][0] += n[0] * area
			accum[vi][1] += n[1] * area
			accum[vi][2] += n[2] * area
			touched[vi] = true
		}
	}
	for i := range accum {
		if !touched[i] {
			continue
		}
		n := accum[i]
		length := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if length < 1e-12 {
			continue
		}
		m.SetNormal(i, [3]float64{n[0] / length, n[1] / length, n[2] / length})
	}
}
