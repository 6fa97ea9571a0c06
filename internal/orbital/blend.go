package orbital

import (
	"context"
	"math"

	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/spatialindex"
	"github.com/roverscene/scenemesh/internal/trim"
	"github.com/roverscene/scenemesh/internal/workerpool"
)

// noPair marks an orbital vertex with no surface neighbor within the
// pairing radius.
const noPair = -1

// PairNearest is §4.12 Pass 1: for every orbital vertex within an XY
// box of half-extent surfaceExtent/2+radius, find the nearest surface
// vertex by XY distance, keeping the pair only if dist² < radius².
// Returns a slice parallel to orbital's vertices holding the paired
// surface vertex index, or noPair. Callers must pass the larger of the
// effective blend radius and the sew radius: a sew-only configuration
// (blendRadius 0) still needs vertices paired for §4.12 Pass 2 to snap
// them.
func PairNearest(ctx context.Context, orbital, surface *scenegeo.Mesh, radius, surfaceExtent float64) ([]int, error) {
	pairs := make([]int, orbital.NumVertices())
	for i := range pairs {
		pairs[i] = noPair
	}
	if radius <= 0 || surface.NumVertices() == 0 || orbital.NumVertices() == 0 {
		return pairs, nil
	}

	boxHalf := surfaceExtent/2 + radius
	grid := spatialindex.NewGrid2D(radius, 0, 0)
	for i, p := range surface.Positions {
		grid.Insert(i, p[0], p[1])
	}
	coordOf := func(id int) (float64, float64) {
		p := surface.Positions[id]
		return p[0], p[1]
	}
	radiusSq := radius * radius

	err := workerpool.Run(ctx, orbital.NumVertices(), func(_ context.Context, i int) error {
		p := orbital.Positions[i]
		if math.Abs(p[0]) > boxHalf || math.Abs(p[1]) > boxHalf {
			return nil
		}
		candidates := grid.QueryRadius(p[0], p[1], radius, coordOf)
		best := noPair
		bestDistSq := math.Inf(1)
		for _, c := range candidates {
			sp := surface.Positions[c]
			dx, dy := sp[0]-p[0], sp[1]-p[1]
			d2 := dx*dx + dy*dy
			if d2 < radiusSq && d2 < bestDistSq {
				bestDistSq = d2
				best = c
			}
		}
		pairs[i] = best
		return nil
	})
	return pairs, err
}

// Blend is §4.12 Pass 2: sew paired orbital vertices that land within
// sewRadius of their surface match, and smooth the rest toward a
// locally-averaged surface height. Pairing (Pass 1) depends only on
// the surface mesh, which Blend never mutates, and each orbital
// vertex's update is independent of every other's, so per-vertex work
// can run across the worker pool without synchronization.
func Blend(ctx context.Context, orbital, surface *scenegeo.Mesh, pairs []int, params sceneconfig.BlendParams, orbitalMPP float64) error {
	if !params.Active() {
		return nil
	}
	radius := params.EffectiveRadius(orbitalMPP)
	smoothRadius := sceneconfig.SmoothRadius(radius)
	if smoothRadius <= 0 {
		smoothRadius = radius
	}

	zDem := make([]float64, orbital.NumVertices())
	for i, p := range orbital.Positions {
		zDem[i] = p[2]
	}

	// Snapshot XY once, before the fan-out below mutates orbital.Positions
	// in place: coordOf must read immutable inputs only (§5/§8), never the
	// live, concurrently-written mesh.
	orbitalXY := make([][2]float64, orbital.NumVertices())
	for i, p := range orbital.Positions {
		orbitalXY[i] = [2]float64{p[0], p[1]}
	}

	orbitalGrid := spatialindex.NewGrid2D(smoothRadius, 0, 0)
	for i, xy := range orbitalXY {
		orbitalGrid.Insert(i, xy[0], xy[1])
	}
	coordOf := func(id int) (float64, float64) {
		return orbitalXY[id][0], orbitalXY[id][1]
	}
	sewRadiusSq := params.SewRadius * params.SewRadius

	return workerpool.Run(ctx, orbital.NumVertices(), func(_ context.Context, i int) error {
		pi := pairs[i]
		if pi == noPair {
			return nil
		}
		p := orbital.Positions[i]
		target := surface.Positions[pi]
		dx, dy := target[0]-p[0], target[1]-p[1]
		distSq := dx*dx + dy*dy

		if distSq < sewRadiusSq {
			orbital.Positions[i] = target
			return nil
		}

		neighbors := orbitalGrid.QueryRadius(p[0], p[1], smoothRadius, coordOf)
		var sumX, sumY, sumZ float64
		n := 0
		for _, w := range neighbors {
			if pairs[w] == noPair {
				continue
			}
			sp := surface.Positions[pairs[w]]
			sumX += sp[0]
			sumY += sp[1]
			sumZ += sp[2]
			n++
		}
		if n == 0 {
			sumX, sumY, sumZ = target[0], target[1], target[2]
			n = 1
		}
		mx, my, mz := sumX/float64(n), sumY/float64(n), sumZ/float64(n)

		d := math.Hypot(mx-p[0], my-p[1])
		blend := math.Sqrt(d / radius)
		if blend < params.BlendMin {
			blend = params.BlendMin
		}
		if blend > 1 {
			blend = 1
		}
		orbital.Positions[i][2] = zDem[i]*blend + mz*(1-blend)
		return nil
	})
}

// Finish implements the §4.12 "Finish" step: clean and regenerate
// normals on the blended orbital mesh, then concatenate it with the
// surface mesh by index-offsetting.
func Finish(surface, orbital *scenegeo.Mesh) *scenegeo.Mesh {
	orbital = trim.Clean(orbital)
	regenerateUpNormals(orbital)
	out := surface.Clone()
	out.AppendOffset(orbital)
	return out
}

// regenerateUpNormals recomputes each vertex normal as the
// area-weighted average of its incident face normals, falling back to
// straight up for unreferenced (point-cloud) vertices.
func regenerateUpNormals(m *scenegeo.Mesh) {
	if m.NumVertices() == 0 {
		return
	}
	accum := make([][3]float64, m.NumVertices())
	for f := 0; f < m.NumFaces(); f++ {
		n := m.FaceNormal(f)
		area := m.FaceArea(f)
		face := m.Faces[f]
		for _, vi := range [3]int32{face[0], face[1], face[2]} {
			accum[vi][0] += n[0] * area
			accum[vi][1] += n[1] * area
			accum[vi][2] += n[2] * area
		}
	}
	for i := range accum {
		n := accum[i]
		length := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if length < 1e-12 {
			m.SetNormal(i, [3]float64{0, 0, 1})
			continue
		}
		m.SetNormal(i, [3]float64{n[0] / length, n[1] / length, n[2] / length})
	}
}
