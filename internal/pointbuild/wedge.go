// Package pointbuild turns per-wedge geometry/normal rasters into
// filtered point clouds in the shared mesh frame (§4.1).
package pointbuild

import (
	"math"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// Raster is a row-major grid of 3-vectors; a cell with a non-finite
// value is a gap (no sample, or an invalid reading).
type Raster struct {
	Rows, Cols int
	Values     [][3]float64
}

// NewRaster allocates a raster with every cell initialized to a gap.
func NewRaster(rows, cols int) *Raster {
	r := &Raster{Rows: rows, Cols: cols, Values: make([][3]float64, rows*cols)}
	nan := math.NaN()
	for i := range r.Values {
		r.Values[i] = [3]float64{nan, nan, nan}
	}
	return r
}

func (r *Raster) Index(row, col int) int { return row*r.Cols + col }

func (r *Raster) At(row, col int) [3]float64 { return r.Values[r.Index(row, col)] }

func (r *Raster) Set(row, col int, v [3]float64) { r.Values[r.Index(row, col)] = v }

func (r *Raster) Valid(row, col int) bool { return scenegeo.IsFinite3(r.At(row, col)) }

// ValidNeighborCount8 counts how many of (row,col)'s 8-neighborhood
// cells hold a valid (finite) sample, used by the normal-filter step
// (§4.1 step 4).
func (r *Raster) ValidNeighborCount8(row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := row+dr, col+dc
			if nr < 0 || nr >= r.Rows || nc < 0 || nc >= r.Cols {
				continue
			}
			if r.Valid(nr, nc) {
				count++
			}
		}
	}
	return count
}

// Wedge is a single stereo/structured-light acquisition: co-registered
// geometry and normal rasters plus a rigid transform into the shared
// mesh frame (glossary: "Wedge").
type Wedge struct {
	Name      string
	SiteDrive string

	Geometry *Raster // required
	Normals  *Raster // may be nil: "normals present" precondition fails

	Pose        scenegeo.Pose
	HasPose     bool
	Reconstructable bool

	// LeftEyeCols and RightEyeCols identify which columns of Geometry
	// belong to the left/right eye; they are used only when
	// HasStereoEyes is set and the StereoEye policy is "left" or
	// "right". HasStereoEyes false means the wedge carries only one eye.
	LeftEyeCols, RightEyeCols [2]int // [startCol, endCol)
	HasStereoEyes             bool

	// CameraDistance supplies per-row/col camera distance used by the
	// confidence normal-scale ramp (§4.1 step 7); nil disables scaling.
	CameraDistance *Raster1 // single-channel raster, reuses Raster's row-major shape conceptually
}

// Raster1 is a single-channel row-major raster (distances, not
// vectors), kept distinct from Raster to avoid wasting 3x memory for
// scalar fields.
type Raster1 struct {
	Rows, Cols int
	Values     []float64
}

func (r *Raster1) Index(row, col int) int { return row*r.Cols + col }
func (r *Raster1) At(row, col int) float64 { return r.Values[r.Index(row, col)] }
