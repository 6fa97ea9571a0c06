package orbital

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/spatialindex"
)

// BuildFillCloud implements §4.5: a dense "point cloud of last resort"
// over the surfaceExtent footprint, normals pointing up, per-point
// confidence encoded as FillPoissonConfidence-scaled normal length.
func BuildFillCloud(surfaceExtent float64, params sceneconfig.OrbitalParams) *scenegeo.Mesh {
	cloud := scenegeo.NewPointCloud()
	if params.FillPointsPerMeter <= 0 {
		return cloud
	}
	half := surfaceExtent / 2
	step := 1.0 / params.FillPointsPerMeter

	for x := -half; x <= half; x += step {
		for y := -half; y <= half; y += step {
			idx := cloud.AddVertex([3]float64{x, y, 0})
			cloud.SetNormal(idx, [3]float64{0, 0, params.FillPoissonConfidence})
		}
	}
	return cloud
}

// HeightAdjust implements §4.5's height-adjust pass: grids the
// already-loaded surface points, computes a per-cell statistic (min,
// max, or med = 0.5*(min+max)), derives the shift needed to match the
// fill cloud's Z to that statistic where surface data exists, and
// infills the shift image radially elsewhere using an
// inverse-distance-weighted average of populated cells within the
// given width, applied with the given blend factor.
func HeightAdjust(fill *scenegeo.Mesh, surfacePoints [][3]float64, cellSize float64, stat_ Statistic, width, blend float64) {
	if len(surfacePoints) == 0 || fill.NumVertices() == 0 {
		return
	}
	grid := spatialindex.NewGrid2D(cellSize, 0, 0)
	cellHeights := make(map[spatialindex.CellKey][]float64)
	for i, p := range surfacePoints {
		k := grid.KeyFor(p[0], p[1])
		cellHeights[k] = append(cellHeights[k], p[2])
		grid.Insert(i, p[0], p[1])
	}

	cellShift := make(map[spatialindex.CellKey]float64, len(cellHeights))
	for k, heights := range cellHeights {
		cellShift[k] = computeStatistic(heights, stat_)
	}

	// Direct assignment where surface data exists; radial infill
	// (inverse-distance-weighted over populated cells within `width`
	// cells) elsewhere, scaled by `blend`.
	for i := range fill.Positions {
		p := fill.Positions[i]
		k := grid.KeyFor(p[0], p[1])
		if target, ok := cellShift[k]; ok {
			fill.Positions[i][2] = target
			continue
		}
		shift, found := radialInfill(grid, cellShift, k, width)
		if found {
			fill.Positions[i][2] = fill.Positions[i][2]*(1-blend) + shift*blend
		}
	}
}

// Statistic selects which per-cell height summary drives the adjust.
type Statistic int

const (
	StatMin Statistic = iota
	StatMax
	StatMed
)

func computeStatistic(heights []float64, s Statistic) float64 {
	switch s {
	case StatMin:
		return floats.Min(heights)
	case StatMax:
		return floats.Max(heights)
	default: // StatMed, per the spec's literal 0.5*(min+max) definition
		return 0.5 * (floats.Min(heights) + floats.Max(heights))
	}
}

// radialInfill searches outward in a growing ring (up to `width`
// cells) for populated neighbor cells and returns their
// inverse-distance-weighted average shift.
func radialInfill(grid *spatialindex.Grid2D, cellShift map[spatialindex.CellKey]float64, k spatialindex.CellKey, width float64) (float64, bool) {
	maxRing := int(math.Ceil(width))
	var values, weights []float64
	for ring := 1; ring <= maxRing; ring++ {
		for dc := -ring; dc <= ring; dc++ {
			for dr := -ring; dr <= ring; dr++ {
				if maxInt(abs(dc), abs(dr)) != ring {
					continue
				}
				nk := spatialindex.CellKey{Col: k.Col + dc, Row: k.Row + dr}
				if v, ok := cellShift[nk]; ok {
					dist := math.Hypot(float64(dc), float64(dr))
					values = append(values, v)
					weights = append(weights, 1.0/(dist*dist))
				}
			}
		}
		if len(values) > 0 {
			break
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, weights), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
