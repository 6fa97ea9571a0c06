package trim

import "github.com/roverscene/scenemesh/internal/scenegeo"

// CullSmallIslands implements §4.10's island culling: faces are
// grouped into connected components by shared vertices, each
// component's XY bounding-box diagonal is measured, and any component
// whose diagonal is less than minIslandRatio of the largest
// component's diagonal is dropped.
func CullSmallIslands(m *scenegeo.Mesh, minIslandRatio float64) *scenegeo.Mesh {
	if minIslandRatio <= 0 || m.NumFaces() == 0 {
		return m
	}

	owner := unionFind(m)
	diag := make(map[int]float64)
	bbox := make(map[int]scenegeo.BoundingBox)
	for f, face := range m.Faces {
		root := find(owner, f)
		b, ok := bbox[root]
		if !ok {
			b = scenegeo.EmptyBoundingBox()
		}
		b.ExpandToInclude(m.Positions[face[0]])
		b.ExpandToInclude(m.Positions[face[1]])
		b.ExpandToInclude(m.Positions[face[2]])
		bbox[root] = b
	}
	for root, b := range bbox {
		diag[root] = b.DiagonalXY()
	}

	largest := 0.0
	for _, d := range diag {
		if d > largest {
			largest = d
		}
	}
	threshold := minIslandRatio * largest

	keep := make([]bool, m.NumFaces())
	for f := range m.Faces {
		root := find(owner, f)
		keep[f] = diag[root] >= threshold
	}
	return m.KeepFaces(keep)
}

// unionFind groups faces that share a vertex into the same component,
// returning a parent array indexed by face.
func unionFind(m *scenegeo.Mesh) []int {
	parent := make([]int, m.NumFaces())
	for i := range parent {
		parent[i] = i
	}

	vertexFace := make(map[int32]int, m.NumVertices())
	for f, face := range m.Faces {
		for _, vi := range face {
			if owner, ok := vertexFace[vi]; ok {
				union(parent, owner, f)
			} else {
				vertexFace[vi] = f
			}
		}
	}
	return parent
}

func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

func union(parent []int, a, b int) {
	ra, rb := find(parent, a), find(parent, b)
	if ra != rb {
		parent[ra] = rb
	}
}
