// Package trim implements the post-reconstruction cleanup pipeline:
// hull trimming (§4.7), the lenient re-trim hole-fill alternative
// (§4.9), and clip/clean/island-cull/normal-regeneration (§4.10).
package trim

import (
	"github.com/roverscene/scenemesh/internal/hull"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// StrictHullTrim implements §4.7: a face survives iff all three of its
// vertices project (XY) inside some triangle of the mask.
func StrictHullTrim(m *scenegeo.Mesh, mask *hull.MaskMesh) *scenegeo.Mesh {
	return filterFaces(m, mask, true)
}

// LenientHullTrim implements §4.9 step 6: a face survives iff at least
// one of its vertices projects inside the mask.
func LenientHullTrim(m *scenegeo.Mesh, mask *hull.MaskMesh) *scenegeo.Mesh {
	return filterFaces(m, mask, false)
}

func filterFaces(m *scenegeo.Mesh, mask *hull.MaskMesh, requireAll bool) *scenegeo.Mesh {
	keep := make([]bool, m.NumFaces())
	for f, face := range m.Faces {
		a := m.Positions[face[0]]
		b := m.Positions[face[1]]
		c := m.Positions[face[2]]
		ina := mask.Contains(a[0], a[1])
		inb := mask.Contains(b[0], b[1])
		inc := mask.Contains(c[0], c[1])
		if requireAll {
			keep[f] = ina && inb && inc
		} else {
			keep[f] = ina || inb || inc
		}
	}
	return m.KeepFaces(keep)
}
