// Package atlas implements §4.13's atlas & texture-warp stage: central
// vs. peripheral submesh splitting, per-submesh UV atlasing through a
// pluggable black-box Atlaser (mirroring the §6 reconstructor/decimator
// contracts), UV rescaling into a shared texture, and the optional
// easing warp that biases texture space toward the central submesh.
package atlas

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// Atlaser is the §6 black-box contract shared by UV-atlas, heightmap,
// naive, and manifold strategies: given a mesh and a target texture
// resolution, assign UVs in [0,1]^2 to every vertex.
type Atlaser interface {
	Atlas(ctx context.Context, mesh *scenegeo.Mesh, textureResolution int) (*scenegeo.Mesh, error)
}

// AtlaserFunc adapts a plain function to the Atlaser interface.
type AtlaserFunc func(ctx context.Context, mesh *scenegeo.Mesh, textureResolution int) (*scenegeo.Mesh, error)

func (f AtlaserFunc) Atlas(ctx context.Context, mesh *scenegeo.Mesh, textureResolution int) (*scenegeo.Mesh, error) {
	return f(ctx, mesh, textureResolution)
}

// Strategies bundles the atlasers available for each configured mode.
// A deployment wires in real UV-atlas/manifold implementations; Naive
// always has a concrete in-core implementation (NaiveAtlaser below).
type Strategies struct {
	UV       Atlaser
	Heightmap Atlaser
	Naive    Atlaser
	Manifold Atlaser
}

func (s Strategies) forMode(mode sceneconfig.AtlasMode) Atlaser {
	switch mode {
	case sceneconfig.AtlasModeUV:
		return s.UV
	case sceneconfig.AtlasModeHeightmap:
		return s.Heightmap
	case sceneconfig.AtlasModeManifold:
		return s.Manifold
	default:
		return s.Naive
	}
}

// AtlasWithFallback implements §4.13's fallback chain: manifold ->
// uv-atlas -> heightmap; uv-atlas alone falls back to heightmap after
// maxTime elapses. A nil strategy for the requested mode (deployment
// didn't wire one in) is treated the same as a failure, triggering the
// next fallback.
func AtlasWithFallback(ctx context.Context, strategies Strategies, mesh *scenegeo.Mesh, mode sceneconfig.AtlasMode, textureResolution int, maxTime time.Duration) (*scenegeo.Mesh, error) {
	chain := fallbackChain(mode)
	var lastErr error
	for _, m := range chain {
		atlaser := strategies.forMode(m)
		if atlaser == nil {
			continue
		}
		runCtx := ctx
		var cancel context.CancelFunc
		if m == sceneconfig.AtlasModeUV && maxTime > 0 {
			runCtx, cancel = context.WithTimeout(ctx, maxTime)
		}
		out, err := atlaser.Atlas(runCtx, mesh, textureResolution)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("atlas: no atlaser configured for mode %s", mode)
	}
	return nil, lastErr
}

func fallbackChain(mode sceneconfig.AtlasMode) []sceneconfig.AtlasMode {
	switch mode {
	case sceneconfig.AtlasModeManifold:
		return []sceneconfig.AtlasMode{sceneconfig.AtlasModeManifold, sceneconfig.AtlasModeUV, sceneconfig.AtlasModeHeightmap}
	case sceneconfig.AtlasModeUV:
		return []sceneconfig.AtlasMode{sceneconfig.AtlasModeUV, sceneconfig.AtlasModeHeightmap}
	default:
		return []sceneconfig.AtlasMode{mode}
	}
}

// SplitCentralPeripheral partitions mesh into a central submesh (faces
// whose centroid XY lies within centralBox) and its complement, used
// to atlas the surface+blend-band region separately from the orbital
// periphery (§4.13).
func SplitCentralPeripheral(mesh *scenegeo.Mesh, centralBox scenegeo.BoundingBox) (central, peripheral *scenegeo.Mesh) {
	centralKeep := make([]bool, mesh.NumFaces())
	peripheralKeep := make([]bool, mesh.NumFaces())
	for f := 0; f < mesh.NumFaces(); f++ {
		c := mesh.FaceCentroid(f)
		if centralBox.ContainsXY(c[0], c[1]) {
			centralKeep[f] = true
		} else {
			peripheralKeep[f] = true
		}
	}
	return mesh.KeepFaces(centralKeep), mesh.KeepFaces(peripheralKeep)
}

// RescaleUVIntoSubrect remaps mesh's existing [0,1]^2 UVs into the
// rectangle [min,max] of texture space (§4.13 "rescale its UVs so the
// central box maps to its subrect of [0,1]^2").
func RescaleUVIntoSubrect(mesh *scenegeo.Mesh, min, max [2]float64) {
	for i := range mesh.UVs {
		u, v := mesh.UVs[i][0], mesh.UVs[i][1]
		mesh.UVs[i][0] = float32(min[0]) + u*float32(max[0]-min[0])
		mesh.UVs[i][1] = float32(min[1]) + v*float32(max[1]-min[1])
	}
}

// MergeSubmeshes concatenates peripheral onto central by index offset,
// the §4.13 "merge the two" step.
func MergeSubmeshes(central, peripheral *scenegeo.Mesh) *scenegeo.Mesh {
	out := central.Clone()
	out.AppendOffset(peripheral)
	return out
}

// WarpUV applies the §4.13 easing warp: UVs inside the central
// [0,dstFrac]^2 subrect (per axis) are compressed/expanded by
// easingExponent so that, after the warp, the central box occupies
// exactly dstFrac of the [0,1] texture axis while the periphery fills
// the remainder. easingExponent=1 is a no-op (identity warp).
func WarpUV(mesh *scenegeo.Mesh, dstFrac, easingExponent float64) {
	if easingExponent == 1 || dstFrac <= 0 || dstFrac >= 1 {
		return
	}
	warpAxis := func(v float32) float32 {
		x := float64(v)
		if x <= dstFrac {
			t := x / dstFrac
			return float32(dstFrac * math.Pow(t, easingExponent))
		}
		t := (x - dstFrac) / (1 - dstFrac)
		return float32(dstFrac + (1-dstFrac)*math.Pow(t, 1/easingExponent))
	}
	for i := range mesh.UVs {
		mesh.UVs[i][0] = warpAxis(mesh.UVs[i][0])
		mesh.UVs[i][1] = warpAxis(mesh.UVs[i][1])
	}
}
