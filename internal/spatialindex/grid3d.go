package spatialindex

import "math"

// CellKey3 identifies one cell of a Grid3D.
type CellKey3 struct{ X, Y, Z int }

// Grid3D buckets 3D points into box-shaped cells. Used by clever-combine
// (§4.4), where merge cells have an XY size distinct from their Z
// "aspect" size, so callers pass separate XY/Z cell sizes rather than
// a single isotropic one.
type Grid3D struct {
	CellSizeXY float64
	CellSizeZ  float64
	cells      map[CellKey3][]int
}

// NewGrid3D creates an empty grid with the given XY and Z cell sizes.
func NewGrid3D(cellSizeXY, cellSizeZ float64) *Grid3D {
	if cellSizeXY <= 0 {
		cellSizeXY = 1
	}
	if cellSizeZ <= 0 {
		cellSizeZ = cellSizeXY
	}
	return &Grid3D{CellSizeXY: cellSizeXY, CellSizeZ: cellSizeZ, cells: make(map[CellKey3][]int)}
}

// KeyFor returns the cell key containing point p.
func (g *Grid3D) KeyFor(p [3]float64) CellKey3 {
	return CellKey3{
		X: int(math.Floor(p[0] / g.CellSizeXY)),
		Y: int(math.Floor(p[1] / g.CellSizeXY)),
		Z: int(math.Floor(p[2] / g.CellSizeZ)),
	}
}

// Insert records that item id lies at p.
func (g *Grid3D) Insert(id int, p [3]float64) {
	k := g.KeyFor(p)
	g.cells[k] = append(g.cells[k], id)
}

// At returns the ids stored in cell k.
func (g *Grid3D) At(k CellKey3) []int { return g.cells[k] }

// Keys returns all occupied cell keys.
func (g *Grid3D) Keys() []CellKey3 {
	out := make([]CellKey3, 0, len(g.cells))
	for k := range g.cells {
		out = append(out, k)
	}
	return out
}

// Len returns the number of occupied cells.
func (g *Grid3D) Len() int { return len(g.cells) }

// Neighbors returns the ids in k's cell plus its 26 surrounding cells.
func (g *Grid3D) Neighbors(k CellKey3) []int {
	var out []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				out = append(out, g.cells[CellKey3{X: k.X + dx, Y: k.Y + dy, Z: k.Z + dz}]...)
			}
		}
	}
	return out
}
