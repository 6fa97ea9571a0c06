// Package spatialindex provides grid-bucketed spatial structures used
// throughout the reconstruction pipeline for nearest-neighbor and
// range queries, in place of a tree-based index: clever-combine cell
// merging (§4.4), hull rasterization (§4.2), the shrinkwrap projection
// grid (§4.9), and orbital-to-surface NN pairing (§4.12) all bucket
// points into cells keyed by a (col,row) pair rather than walking a
// kd-tree, mirroring the teacher's own cell-indexed background model.
package spatialindex

import "math"

// CellKey identifies one cell of a Grid2D.
type CellKey struct{ Col, Row int }

// Grid2D buckets 2D points (or XY projections of 3D points) into
// square cells of side CellSize, keyed by CellKey. It is the workhorse
// behind every range/NN query in the pipeline.
type Grid2D struct {
	CellSize float64
	OriginX  float64
	OriginY  float64
	cells    map[CellKey][]int
}

// NewGrid2D creates an empty grid with the given cell size, anchored
// so that (originX, originY) falls on a cell boundary.
func NewGrid2D(cellSize, originX, originY float64) *Grid2D {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid2D{CellSize: cellSize, OriginX: originX, OriginY: originY, cells: make(map[CellKey][]int)}
}

// KeyFor returns the cell key containing point (x, y).
func (g *Grid2D) KeyFor(x, y float64) CellKey {
	col := int(math.Floor((x - g.OriginX) / g.CellSize))
	row := int(math.Floor((y - g.OriginY) / g.CellSize))
	return CellKey{Col: col, Row: row}
}

// Insert records that item id lies at (x, y).
func (g *Grid2D) Insert(id int, x, y float64) {
	k := g.KeyFor(x, y)
	g.cells[k] = append(g.cells[k], id)
}

// At returns the ids stored in cell k.
func (g *Grid2D) At(k CellKey) []int {
	return g.cells[k]
}

// Len returns the number of occupied cells.
func (g *Grid2D) Len() int { return len(g.cells) }

// Keys returns all occupied cell keys, useful for deterministic
// iteration when callers impose their own ordering.
func (g *Grid2D) Keys() []CellKey {
	out := make([]CellKey, 0, len(g.cells))
	for k := range g.cells {
		out = append(out, k)
	}
	return out
}

// Neighbors returns the ids in k's cell plus all 8 surrounding cells,
// the standard one-ring query used for radius-bounded searches where
// the search radius is <= CellSize.
func (g *Grid2D) Neighbors(k CellKey) []int {
	var out []int
	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			out = append(out, g.cells[CellKey{Col: k.Col + dc, Row: k.Row + dr}]...)
		}
	}
	return out
}

// Ring returns the ids in all cells within radiusCells of k (Chebyshev
// distance), for queries whose radius spans more than one cell.
func (g *Grid2D) Ring(k CellKey, radiusCells int) []int {
	var out []int
	for dc := -radiusCells; dc <= radiusCells; dc++ {
		for dr := -radiusCells; dr <= radiusCells; dr++ {
			out = append(out, g.cells[CellKey{Col: k.Col + dc, Row: k.Row + dr}]...)
		}
	}
	return out
}

// QueryRadius returns ids whose grid cell is within radius meters of
// (x, y), scanning enough rings to cover radius plus one cell's worth
// of slack for points near a cell edge. coordOf supplies each id's
// coordinates, used to filter false positives down to the true radius.
func (g *Grid2D) QueryRadius(x, y, radius float64, coordOf func(id int) (float64, float64)) []int {
	k := g.KeyFor(x, y)
	ringCells := int(math.Ceil(radius/g.CellSize)) + 1
	candidates := g.Ring(k, ringCells)
	out := candidates[:0]
	r2 := radius * radius
	for _, id := range candidates {
		cx, cy := coordOf(id)
		dx, dy := cx-x, cy-y
		if dx*dx+dy*dy <= r2 {
			out = append(out, id)
		}
	}
	return out
}
