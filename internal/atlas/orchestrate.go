package atlas

import (
	"context"
	"fmt"
	"time"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// Params bundles the §4.13 orchestration knobs, sourced directly from
// sceneconfig.Options.
type Params struct {
	TextureResolution int
	DstSurfaceFrac    float64
	WarpExponent      float64
	MaxTime           time.Duration // <=0 disables the uv-atlas timeout
}

// BuildAtlas implements §4.13 end to end: if centralBox has no faces
// outside it, the whole mesh is atlased as one submesh. Otherwise the
// mesh is split into a central (surface + blend band) and peripheral
// submesh, each atlased independently through the fallback chain, UVs
// rescaled so central occupies [0,dstFrac] of each texture axis and
// peripheral the remainder, optionally warped, then merged back into
// one mesh.
func BuildAtlas(ctx context.Context, strategies Strategies, mesh *scenegeo.Mesh, mode sceneconfig.AtlasMode, centralBox scenegeo.BoundingBox, params Params) (*scenegeo.Mesh, error) {
	central, peripheral := SplitCentralPeripheral(mesh, centralBox)

	if peripheral.NumFaces() == 0 {
		out, err := atlasOne(ctx, strategies, central, mode, params)
		if err != nil {
			return nil, fmt.Errorf("atlas: %w", err)
		}
		return out, nil
	}

	centralOut, err := atlasOne(ctx, strategies, central, mode, params)
	if err != nil {
		return nil, fmt.Errorf("atlas: central submesh: %w", err)
	}
	peripheralOut, err := atlasOne(ctx, strategies, peripheral, mode, params)
	if err != nil {
		return nil, fmt.Errorf("atlas: peripheral submesh: %w", err)
	}

	frac := params.DstSurfaceFrac
	if frac <= 0 || frac >= 1 {
		frac = 0.75
	}
	RescaleUVIntoSubrect(centralOut, [2]float64{0, 0}, [2]float64{frac, frac})
	RescaleUVIntoSubrect(peripheralOut, [2]float64{frac, frac}, [2]float64{1, 1})

	merged := MergeSubmeshes(centralOut, peripheralOut)
	WarpUV(merged, frac, params.WarpExponent)
	return merged, nil
}

func atlasOne(ctx context.Context, strategies Strategies, mesh *scenegeo.Mesh, mode sceneconfig.AtlasMode, params Params) (*scenegeo.Mesh, error) {
	if mode == sceneconfig.AtlasModeNaive {
		return NaiveAtlaser{}.Atlas(ctx, mesh, params.TextureResolution)
	}
	out, err := AtlasWithFallback(ctx, strategies, mesh, mode, params.TextureResolution, params.MaxTime)
	if err != nil {
		return NaiveAtlaser{}.Atlas(ctx, mesh, params.TextureResolution)
	}
	return out, nil
}
