package hull

import (
	"github.com/roverscene/scenemesh/internal/spatialindex"
)

// SurfaceHullMergeEps is the occupancy grid's cell width (§4.2).
const SurfaceHullMergeEps = 0.1

// SurfaceHullFillHoles is the morphological-close radius, in cells
// (§4.2).
const SurfaceHullFillHoles = 10

// Build rasterizes points into an occupancy grid, morphologically
// closes holes, extracts edge cells, Delaunay-triangulates them, and
// clips the result to surfaceExtent, producing the surface hull
// MaskMesh used as a strict XY trim (§4.2).
func Build(points [][3]float64, surfaceExtent float64) *MaskMesh {
	occ := rasterize(points, SurfaceHullMergeEps)
	occ = morphologicalClose(occ, SurfaceHullFillHoles)
	edgeCells := extractEdgeCells(occ)

	pts := make([]Point2D, len(edgeCells))
	for i, cell := range edgeCells {
		x, y := occ.CellCenter(cell)
		pts[i] = Point2D{X: x, Y: y}
	}
	tris := Delaunay(pts)

	half := surfaceExtent / 2
	out := make([]spatialindex.Triangle2D, 0, len(tris))
	for _, t := range tris {
		a, b, c := pts[t.A], pts[t.B], pts[t.C]
		if !withinSquare(a, half) && !withinSquare(b, half) && !withinSquare(c, half) {
			continue
		}
		out = append(out, spatialindex.Triangle2D{
			A: [2]float64{a.X, a.Y},
			B: [2]float64{b.X, b.Y},
			C: [2]float64{c.X, c.Y},
		})
	}
	return NewMaskMesh(out)
}

func withinSquare(p Point2D, half float64) bool {
	return p.X >= -half && p.X <= half && p.Y >= -half && p.Y <= half
}

// occupancyGrid is a dense boolean grid over a point set's XY bounds,
// cell-indexed for the morphological-close / edge-extraction passes.
type occupancyGrid struct {
	cellSize   float64
	minX, minY float64
	cols, rows int
	occupied   []bool
}

func rasterize(points [][3]float64, cellSize float64) *occupancyGrid {
	if len(points) == 0 {
		return &occupancyGrid{cellSize: cellSize}
	}
	minX, minY := points[0][0], points[0][1]
	maxX, maxY := points[0][0], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	cols := int((maxX-minX)/cellSize) + 3
	rows := int((maxY-minY)/cellSize) + 3
	g := &occupancyGrid{
		cellSize: cellSize,
		minX:     minX - cellSize,
		minY:     minY - cellSize,
		cols:     cols,
		rows:     rows,
		occupied: make([]bool, cols*rows),
	}
	for _, p := range points {
		c, r := g.cellOf(p[0], p[1])
		g.occupied[g.index(c, r)] = true
	}
	return g
}

func (g *occupancyGrid) cellOf(x, y float64) (int, int) {
	return int((x - g.minX) / g.cellSize), int((y - g.minY) / g.cellSize)
}

func (g *occupancyGrid) index(c, r int) int { return r*g.cols + c }

func (g *occupancyGrid) at(c, r int) bool {
	if c < 0 || c >= g.cols || r < 0 || r >= g.rows {
		return false
	}
	return g.occupied[g.index(c, r)]
}

// CellCenter returns the XY center of cell (c, r).
func (g *occupancyGrid) CellCenter(cr [2]int) (float64, float64) {
	c, r := cr[0], cr[1]
	return g.minX + (float64(c)+0.5)*g.cellSize, g.minY + (float64(r)+0.5)*g.cellSize
}

// morphologicalClose fills holes up to radius cells: a cell becomes
// occupied if an occupied cell exists within radius in both the
// horizontal and vertical direction (a coarse dilate-then-no-erode
// "close" sufficient for hole-filling at this grid's resolution).
func morphologicalClose(g *occupancyGrid, radius int) *occupancyGrid {
	if g.cols == 0 {
		return g
	}
	closed := make([]bool, len(g.occupied))
	copy(closed, g.occupied)

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.at(c, r) {
				continue
			}
			if hasOccupiedWithin(g, c, r, radius, true) && hasOccupiedWithin(g, c, r, radius, false) {
				closed[g.index(c, r)] = true
			}
		}
	}
	return &occupancyGrid{cellSize: g.cellSize, minX: g.minX, minY: g.minY, cols: g.cols, rows: g.rows, occupied: closed}
}

func hasOccupiedWithin(g *occupancyGrid, c, r, radius int, horizontal bool) bool {
	foundNeg, foundPos := false, false
	for d := 1; d <= radius; d++ {
		if horizontal {
			if g.at(c-d, r) {
				foundNeg = true
			}
			if g.at(c+d, r) {
				foundPos = true
			}
		} else {
			if g.at(c, r-d) {
				foundNeg = true
			}
			if g.at(c, r+d) {
				foundPos = true
			}
		}
		if foundNeg && foundPos {
			return true
		}
	}
	return false
}

// extractEdgeCells returns occupied cells whose 3x3 neighborhood is
// not fully occupied (§4.2 "edge" cells).
func extractEdgeCells(g *occupancyGrid) [][2]int {
	var out [][2]int
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !g.at(c, r) {
				continue
			}
			full := true
			for dr := -1; dr <= 1 && full; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if !g.at(c+dc, r+dr) {
						full = false
						break
					}
				}
			}
			if !full {
				out = append(out, [2]int{c, r})
			}
		}
	}
	return out
}
