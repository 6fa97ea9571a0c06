package atlas

import (
	"context"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// NaiveAtlaser assigns UVs by a straight top-down projection of each
// vertex's XY position onto [0,1]^2, scaled by the mesh's own XY
// bounding box. It makes no attempt to avoid seams or pack charts; it
// exists as the always-available fallback atlaser and as the default
// when AtlasModeNaive is selected (§4.13).
type NaiveAtlaser struct{}

func (NaiveAtlaser) Atlas(_ context.Context, mesh *scenegeo.Mesh, _ int) (*scenegeo.Mesh, error) {
	out := mesh.Clone()
	box := out.BoundingBox()
	width := box.Max[0] - box.Min[0]
	height := box.Max[1] - box.Min[1]
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	for i, p := range out.Positions {
		u := float32((p[0] - box.Min[0]) / width)
		v := float32((p[1] - box.Min[1]) / height)
		out.SetUV(i, [2]float32{u, v})
	}
	return out, nil
}
