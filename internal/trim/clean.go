package trim

import "github.com/roverscene/scenemesh/internal/scenegeo"

// DegenerateAreaEps is the minimum triangle area (m²) a face must
// clear to survive Clean (§4.10, §8 "no degenerate face" invariant).
const DegenerateAreaEps = 1e-12

// Clean removes degenerate faces (area <= DegenerateAreaEps) and any
// vertex left unreferenced by the remaining faces. Idempotent:
// Clean(Clean(m)) == Clean(m), since a mesh with no degenerate faces
// and no unreferenced vertices has nothing left to remove.
func Clean(m *scenegeo.Mesh) *scenegeo.Mesh {
	keep := make([]bool, m.NumFaces())
	for f := range m.Faces {
		keep[f] = m.FaceArea(f) > DegenerateAreaEps
	}
	return m.KeepFaces(keep)
}
