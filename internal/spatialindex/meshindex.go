package spatialindex

import "math"

// Triangle2D is a flat 2D triangle, used both for UV-space atlas
// lookups and for XY-plane mask-mesh containment tests (§4.7, §4.9).
type Triangle2D struct {
	A, B, C [2]float64
}

// barycentric returns the barycentric coordinates of p within t. The
// third return value is false if t is degenerate.
func barycentric(t Triangle2D, p [2]float64) (u, v, w float64, ok bool) {
	v0 := [2]float64{t.B[0] - t.A[0], t.B[1] - t.A[1]}
	v1 := [2]float64{t.C[0] - t.A[0], t.C[1] - t.A[1]}
	v2 := [2]float64{p[0] - t.A[0], p[1] - t.A[1]}

	d00 := v0[0]*v0[0] + v0[1]*v0[1]
	d01 := v0[0]*v1[0] + v0[1]*v1[1]
	d11 := v1[0]*v1[0] + v1[1]*v1[1]
	d20 := v2[0]*v0[0] + v2[1]*v0[1]
	d21 := v2[0]*v1[0] + v2[1]*v1[1]

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-15 {
		return 0, 0, 0, false
	}
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w, true
}

// Contains reports whether p lies within t (inclusive of the boundary,
// with a small epsilon to tolerate floating point error at edges).
func Contains(t Triangle2D, p [2]float64) bool {
	u, v, w, ok := barycentric(t, p)
	if !ok {
		return false
	}
	const eps = -1e-9
	return u >= eps && v >= eps && w >= eps
}

// MeshIndex is a bucketed lookup over a set of 2D triangles, supporting
// "which triangle (if any) contains this point" queries — the
// operation mask-mesh containment (§4.7 strict trim, §9 MaskMesh) and
// atlas UV rebinning (§4.13) both need. It is rebuilt fresh for each
// phase that needs it, per §9.
type MeshIndex struct {
	tris []Triangle2D
	grid *Grid2D
}

// NewMeshIndex buckets tris into a grid sized to roughly one triangle
// per cell on average, inserting each triangle into every cell its XY
// bounding box overlaps.
func NewMeshIndex(tris []Triangle2D) *MeshIndex {
	if len(tris) == 0 {
		return &MeshIndex{grid: NewGrid2D(1, 0, 0)}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range tris {
		for _, p := range [3][2]float64{t.A, t.B, t.C} {
			minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
			minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
		}
	}
	span := math.Max(maxX-minX, maxY-minY)
	cellSize := span / math.Sqrt(float64(len(tris)))
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}
	idx := &MeshIndex{tris: tris, grid: NewGrid2D(cellSize, minX, minY)}
	for i, t := range tris {
		bMinX := math.Min(t.A[0], math.Min(t.B[0], t.C[0]))
		bMaxX := math.Max(t.A[0], math.Max(t.B[0], t.C[0]))
		bMinY := math.Min(t.A[1], math.Min(t.B[1], t.C[1]))
		bMaxY := math.Max(t.A[1], math.Max(t.B[1], t.C[1]))
		kMin := idx.grid.KeyFor(bMinX, bMinY)
		kMax := idx.grid.KeyFor(bMaxX, bMaxY)
		for col := kMin.Col; col <= kMax.Col; col++ {
			for row := kMin.Row; row <= kMax.Row; row++ {
				k := CellKey{Col: col, Row: row}
				idx.grid.cells[k] = append(idx.grid.cells[k], i)
			}
		}
	}
	return idx
}

// Locate returns the index of a triangle containing p, or -1 if none
// does.
func (idx *MeshIndex) Locate(p [2]float64) int {
	if idx.grid == nil {
		return -1
	}
	k := idx.grid.KeyFor(p[0], p[1])
	for _, ti := range idx.grid.At(k) {
		if Contains(idx.tris[ti], p) {
			return ti
		}
	}
	return -1
}

// Contains reports whether any triangle in the index contains p.
func (idx *MeshIndex) Contains(p [2]float64) bool {
	return idx.Locate(p) >= 0
}
