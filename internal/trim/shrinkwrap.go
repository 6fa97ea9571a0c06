package trim

import (
	"math"

	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/spatialindex"
)

// Shrinkwrap implements §4.9 step 1: a regular XY grid at
// pointsPerMeter over mesh's XY bounds, each cell projected down the Z
// axis onto mesh (miss = gap, "Clip on miss"). The glossary calls this
// a height field "resembling the mesh's upper envelope": where more
// than one mesh triangle covers a grid cell's XY, the highest hit
// wins.
func Shrinkwrap(mesh *scenegeo.Mesh, pointsPerMeter float64) *scenegeo.OrganizedMesh {
	bounds := mesh.BoundingBox()
	if !bounds.Valid() || pointsPerMeter <= 0 || mesh.NumFaces() == 0 {
		return scenegeo.NewOrganizedMesh(0, 0)
	}
	proj := newZProjector(mesh)

	step := 1.0 / pointsPerMeter
	cols := int(math.Ceil((bounds.Max[0]-bounds.Min[0])/step)) + 1
	rows := int(math.Ceil((bounds.Max[1]-bounds.Min[1])/step)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	om := scenegeo.NewOrganizedMesh(rows, cols)
	for r := 0; r < rows; r++ {
		y := bounds.Min[1] + float64(r)*step
		for c := 0; c < cols; c++ {
			x := bounds.Min[0] + float64(c)*step
			z, ok := proj.projectDown(x, y)
			if !ok {
				continue
			}
			om.Positions[om.RowMajorIndex(r, c)] = [3]float64{x, y, z}
		}
	}
	om.BuildQuadFaces()
	return om
}

// zProjector buckets a mesh's triangles (with their full 3D vertices,
// unlike hull.MaskMesh's 2D-only triangles) into a Grid2D keyed by XY,
// for the "project down Z, highest hit wins" shrinkwrap query.
type zProjector struct {
	mesh *scenegeo.Mesh
	grid *spatialindex.Grid2D
}

func newZProjector(mesh *scenegeo.Mesh) *zProjector {
	bounds := mesh.BoundingBox()
	span := math.Max(bounds.Max[0]-bounds.Min[0], bounds.Max[1]-bounds.Min[1])
	n := math.Max(1, float64(mesh.NumFaces()))
	cellSize := span / math.Sqrt(n)
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}
	grid := spatialindex.NewGrid2D(cellSize, bounds.Min[0], bounds.Min[1])
	zp := &zProjector{mesh: mesh, grid: grid}
	for f := 0; f < mesh.NumFaces(); f++ {
		a, b, c := mesh.FaceVertices(f)
		minX := math.Min(a[0], math.Min(b[0], c[0]))
		maxX := math.Max(a[0], math.Max(b[0], c[0]))
		minY := math.Min(a[1], math.Min(b[1], c[1]))
		maxY := math.Max(a[1], math.Max(b[1], c[1]))
		kMin := grid.KeyFor(minX, minY)
		kMax := grid.KeyFor(maxX, maxY)
		for col := kMin.Col; col <= kMax.Col; col++ {
			for row := kMin.Row; row <= kMax.Row; row++ {
				cx := grid.OriginX + (float64(col)+0.5)*grid.CellSize
				cy := grid.OriginY + (float64(row)+0.5)*grid.CellSize
				grid.Insert(f, cx, cy)
			}
		}
	}
	return zp
}

func (zp *zProjector) projectDown(x, y float64) (float64, bool) {
	k := zp.grid.KeyFor(x, y)
	best := math.Inf(-1)
	found := false
	for _, f := range zp.grid.At(k) {
		a, b, c := zp.mesh.FaceVertices(f)
		z, ok := interpolateZ(a, b, c, x, y)
		if !ok {
			continue
		}
		if z > best {
			best = z
			found = true
		}
	}
	return best, found
}

// interpolateZ computes the barycentric-interpolated Z of (x,y) within
// triangle (a,b,c)'s XY projection, or ok=false if (x,y) lies outside.
func interpolateZ(a, b, c [3]float64, x, y float64) (float64, bool) {
	v0x, v0y := b[0]-a[0], b[1]-a[1]
	v1x, v1y := c[0]-a[0], c[1]-a[1]
	v2x, v2y := x-a[0], y-a[1]

	d00 := v0x*v0x + v0y*v0y
	d01 := v0x*v1x + v0y*v1y
	d11 := v1x*v1x + v1y*v1y
	d20 := v2x*v0x + v2y*v0y
	d21 := v2x*v1x + v2y*v1y

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-15 {
		return 0, false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	const eps = -1e-9
	if u < eps || v < eps || w < eps {
		return 0, false
	}
	return u*a[2] + v*b[2] + w*c[2], true
}
