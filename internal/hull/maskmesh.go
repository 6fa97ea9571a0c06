package hull

import "github.com/roverscene/scenemesh/internal/spatialindex"

// MaskMesh is a planar XY triangulation whose faces define an
// inside/outside test via barycentric coordinates (§3 MaskMesh,
// glossary "Mask mesh").
type MaskMesh struct {
	index *spatialindex.MeshIndex
}

// NewMaskMesh builds a MaskMesh from explicit triangles.
func NewMaskMesh(tris []spatialindex.Triangle2D) *MaskMesh {
	return &MaskMesh{index: spatialindex.NewMeshIndex(tris)}
}

// Contains reports whether (x,y) lies inside some triangle of the mask.
func (m *MaskMesh) Contains(x, y float64) bool {
	return m.index.Contains([2]float64{x, y})
}
