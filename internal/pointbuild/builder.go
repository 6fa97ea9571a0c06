package pointbuild

import (
	"fmt"
	"math"

	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/sceneconfig"
)

// BuildOne runs the §4.1 per-wedge algorithm, returning the wedge's
// point cloud in mesh frame. The returned error is always non-fatal
// per §4.1 "Failures" — callers log and skip the wedge.
func BuildOne(w *Wedge, opts sceneconfig.BuildOptions) (*scenegeo.Mesh, error) {
	if !w.Reconstructable {
		return nil, fmt.Errorf("wedge %s: not reconstructable", w.Name)
	}
	if w.Geometry == nil {
		return nil, fmt.Errorf("wedge %s: missing geometry raster", w.Name)
	}
	if w.Normals == nil {
		return nil, fmt.Errorf("wedge %s: missing normal raster", w.Name)
	}
	if !w.HasPose {
		return nil, fmt.Errorf("wedge %s: missing transform", w.Name)
	}

	geom, normals := applyStereoEyePolicy(w, opts.StereoEye)

	rows, cols := geom.Rows, geom.Cols
	decimateStride := 1
	if opts.AutoDecimate {
		decimateStride = autoDecimateStride(rows, cols)
	}

	cloud := scenegeo.NewPointCloud()
	for r := 0; r < rows; r += decimateStride {
		for c := 0; c < cols; c += decimateStride {
			pos := geom.At(r, c)
			nrm := normals.At(r, c)
			if !scenegeo.IsFinite3(pos) || !scenegeo.IsFinite3(nrm) {
				continue
			}
			if normals.ValidNeighborCount8(r, c) < opts.NormalFilter {
				continue
			}
			sitePos := scenegeo.ApplyPose(w.Pose, pos)
			siteNrm := scenegeo.ApplyPoseDirection(w.Pose, nrm)
			idx := cloud.AddVertex(sitePos)
			cloud.SetNormal(idx, siteNrm)
			if w.CameraDistance != nil {
				cloud.SetColor(idx, [3]float32{float32(w.CameraDistance.At(r, c)), 0, 0})
			}
		}
	}

	if opts.PreClipExtent > 0 {
		cloud = clipToSquare(cloud, opts.PreClipExtent)
	}

	cloud = dedupMerge(cloud, opts.MergeEpsilon)

	if opts.NormalScale == sceneconfig.NormalScaleConfidence {
		rescaleConfidence(cloud, w, opts)
	}

	if cloud.NumVertices() == 0 {
		return nil, fmt.Errorf("wedge %s: zero kept points", w.Name)
	}
	return cloud, nil
}

// applyStereoEyePolicy returns the geometry/normal sub-rasters implied
// by the configured eye policy. "auto"/"any" pass the full raster
// through unchanged; "left"/"right" slice to the wedge's declared eye
// columns when the wedge carries both eyes.
func applyStereoEyePolicy(w *Wedge, policy sceneconfig.StereoEyePolicy) (*Raster, *Raster) {
	if !w.HasStereoEyes || policy == sceneconfig.StereoEyeAuto || policy == sceneconfig.StereoEyeAny {
		return w.Geometry, w.Normals
	}
	cols := w.LeftEyeCols
	if policy == sceneconfig.StereoEyeRight {
		cols = w.RightEyeCols
	}
	return sliceCols(w.Geometry, cols), sliceCols(w.Normals, cols)
}

func sliceCols(r *Raster, cols [2]int) *Raster {
	start, end := cols[0], cols[1]
	if end <= start {
		return r
	}
	out := NewRaster(r.Rows, end-start)
	for row := 0; row < r.Rows; row++ {
		for c := start; c < end; c++ {
			out.Set(row, c-start, r.At(row, c))
		}
	}
	return out
}

// autoDecimateStride picks a stride so the decimated raster has no
// more than targetRasterCells samples, per "auto-decimate if raster
// resolution exceeds target" (§4.1 step 2).
const targetRasterCells = 2_000_000

func autoDecimateStride(rows, cols int) int {
	total := rows * cols
	if total <= targetRasterCells {
		return 1
	}
	ratio := float64(total) / float64(targetRasterCells)
	return int(math.Ceil(math.Sqrt(ratio)))
}

func clipToSquare(m *scenegeo.Mesh, extent float64) *scenegeo.Mesh {
	half := extent / 2
	keep := make([]bool, m.NumVertices())
	for i, p := range m.Positions {
		keep[i] = p[0] >= -half && p[0] <= half && p[1] >= -half && p[1] <= half
	}
	return m.KeepVertices(keep)
}

// rescaleConfidence implements §4.1 step 7: normal length ramps from
// 1.0 at NearLimit down to LinearConfidenceMin at FarLimit, clamped at
// the endpoints. Distance per vertex is approximated from the stashed
// camera-distance channel (w.CameraDistance), falling back to a no-op
// when that channel wasn't supplied.
func rescaleConfidence(m *scenegeo.Mesh, w *Wedge, opts sceneconfig.BuildOptions) {
	if w.CameraDistance == nil || opts.FarLimit <= opts.NearLimit {
		return
	}
	for i := range m.Positions {
		if !m.HasColor(i) {
			continue
		}
		dist := float64(m.Colors[i][0])
		t := (dist - opts.NearLimit) / (opts.FarLimit - opts.NearLimit)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		scale := 1.0 - t*(1.0-opts.LinearConfidenceMin)
		n := m.Normals[i]
		m.Normals[i] = [3]float64{n[0] * scale, n[1] * scale, n[2] * scale}
	}
}
