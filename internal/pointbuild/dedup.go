package pointbuild

import (
	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/spatialindex"
)

// dedupMerge implements §4.1 step 6: merge vertices within epsilon
// meters of a vertex already kept. Uses a 3D grid sized to epsilon so
// each candidate only needs to check its 27-cell neighborhood.
func dedupMerge(m *scenegeo.Mesh, epsilon float64) *scenegeo.Mesh {
	if epsilon <= 0 || m.NumVertices() == 0 {
		return m
	}
	grid := spatialindex.NewGrid3D(epsilon, epsilon)
	eps2 := epsilon * epsilon

	keep := make([]bool, m.NumVertices())
	for i, p := range m.Positions {
		k := grid.KeyFor(p)
		duplicate := false
		for _, other := range grid.Neighbors(k) {
			op := m.Positions[other]
			dx, dy, dz := p[0]-op[0], p[1]-op[1], p[2]-op[2]
			if dx*dx+dy*dy+dz*dz < eps2 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			keep[i] = true
			grid.Insert(i, p)
		}
	}
	return m.KeepVertices(keep)
}
