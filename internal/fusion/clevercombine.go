// Package fusion implements the grid-bucketed, outlier-resistant
// multi-cloud merger described in §4.4 ("clever-combine"): many
// PointClouds, each with a reference origin, are hashed into XY×Z
// cells and capped per cell by proximity-to-origin rank.
package fusion

import (
	"sort"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/spatialindex"
)

// SourceCloud pairs a PointCloud with the origin point used to rank
// its samples within a cell (closer to origin wins).
type SourceCloud struct {
	Cloud  *scenegeo.Mesh
	Origin [3]float64
}

type sample struct {
	cloudIdx int
	vertIdx  int
	distSq   float64
}

// Combine merges sources under params, returning a single PointCloud
// whose per-cell sample count never exceeds params.MaxPerCell (§8
// invariant), with kept samples within a cell ordered by increasing
// rank (§4.4 guarantees).
func Combine(sources []SourceCloud, params sceneconfig.CleverCombineParams) *scenegeo.Mesh {
	if params.Disabled {
		return concatAll(sources)
	}

	grid := spatialindex.NewGrid3D(params.CellSize, params.CellHeight())
	cellSamples := make(map[spatialindex.CellKey3][]sample)

	for ci, src := range sources {
		for vi, p := range src.Cloud.Positions {
			k := grid.KeyFor(p)
			dx, dy, dz := p[0]-src.Origin[0], p[1]-src.Origin[1], p[2]-src.Origin[2]
			cellSamples[k] = append(cellSamples[k], sample{cloudIdx: ci, vertIdx: vi, distSq: dx*dx + dy*dy + dz*dz})
		}
	}

	out := scenegeo.NewPointCloud()
	keys := make([]spatialindex.CellKey3, 0, len(cellSamples))
	for k := range cellSamples {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].Z < keys[j].Z
	})

	for _, k := range keys {
		samples := cellSamples[k]
		sort.Slice(samples, func(i, j int) bool { return samples[i].distSq < samples[j].distSq })
		n := len(samples)
		if n > params.MaxPerCell {
			n = params.MaxPerCell
		}
		for _, s := range samples[:n] {
			copySampleInto(out, sources[s.cloudIdx].Cloud, s.vertIdx)
		}
	}
	return out
}

func copySampleInto(dst *scenegeo.Mesh, src *scenegeo.Mesh, vi int) {
	ni := dst.AddVertex(src.Positions[vi])
	if src.HasNormal(vi) {
		dst.SetNormal(ni, src.Normals[vi])
	}
	if src.HasColor(vi) {
		dst.SetColor(ni, src.Colors[vi])
	}
	if src.HasUV(vi) {
		dst.SetUV(ni, src.UVs[vi])
	}
}

func concatAll(sources []SourceCloud) *scenegeo.Mesh {
	out := scenegeo.NewPointCloud()
	for _, src := range sources {
		out.AppendOffset(src.Cloud)
	}
	return out
}
