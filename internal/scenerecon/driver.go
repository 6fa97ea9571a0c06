package scenerecon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/roverscene/scenemesh/internal/atlas"
	"github.com/roverscene/scenemesh/internal/fusion"
	"github.com/roverscene/scenemesh/internal/hull"
	"github.com/roverscene/scenemesh/internal/obsreduce"
	"github.com/roverscene/scenemesh/internal/orbital"
	"github.com/roverscene/scenemesh/internal/pointbuild"
	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenedebug"
	"github.com/roverscene/scenemesh/internal/scenegeo"
	"github.com/roverscene/scenemesh/internal/trim"
)

// Driver sequences the §4.6-§4.14 pipeline over the §6 black-box
// collaborators. A nil collaborator never causes a panic: a nil
// Reconstructor (or SampleScaleReconstructor, for the sample-scale
// method) makes Run report an invalid-arg error unless NoSurface is
// set; a nil DEM skips the orbital periphery with a log line; a nil
// Decimator passes meshes through; a nil Store skips saving. Run does
// not consult Frames.
type Driver struct {
	Reconstructor            Reconstructor
	SampleScaleReconstructor SampleScaleReconstructor
	Decimator                Decimator
	AtlasStrategies          atlas.Strategies
	DEM                      OrbitalDEMProvider
	Frames                   FrameService
	Store                    ProjectStore
	Logger                   *log.Logger
}

// Run executes the full pipeline for one project/variant and returns
// the final mesh. frustums is the optional §4.14 observation-reduction
// input; a nil/empty slice skips that stage entirely.
func (d *Driver) Run(ctx context.Context, wedges []*pointbuild.Wedge, opts sceneconfig.Options, frustums []obsreduce.Frustum) (*scenegeo.Mesh, error) {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := opts.Validate(); err != nil {
		return nil, newError(KindInvalidArg, "validate", err)
	}

	dbg := scenedebug.New(opts.DebugDir, nil, logger)
	defer dbg.Finish()

	// §4.1: per-wedge point clouds, parallel over wedges.
	results, err := pointbuild.BuildAll(ctx, logger, wedges, opts.Build)
	if err != nil {
		return nil, newError(KindNoInput, "pointbuild", err)
	}
	clouds := pointbuild.KeptClouds(results)
	if len(clouds) == 0 {
		return nil, newError(KindNoInput, "pointbuild", fmt.Errorf("no wedge yielded kept points"))
	}

	allPoints := flattenPositions(clouds)
	dbg.Stage("wedge-clouds", pointCloudOf(allPoints))

	surfaceExtent := opts.SurfaceExtent
	if opts.AutoExpandSurfaceExtent {
		surfaceExtent = hull.AutoExpandSurfaceExtent(allPoints, opts.SurfaceExtent, opts.MaxAutoSurfaceExtent, opts.Extent)
	}
	tilingSurfaceExtent := opts.SurfaceExtent
	if opts.UseExpandedSurfaceExtentForTiling {
		tilingSurfaceExtent = surfaceExtent
	}

	var surfaceMask *hull.MaskMesh
	if !opts.NoSurface {
		surfaceMask = hull.Build(allPoints, surfaceExtent)
	}

	// §4.5: orbital fill is the point cloud of last resort, merged in
	// alongside the wedge clouds so clever-combine treats it uniformly.
	demLoaded := d.DEM != nil
	orbitalFillUsed := !opts.NoOrbital && opts.Orbital.UsesFill(demLoaded)
	sources := make([]fusion.SourceCloud, 0, len(clouds)+1)
	for i, c := range clouds {
		sources = append(sources, fusion.SourceCloud{Cloud: c, Origin: wedgeOrigin(results, i, clouds)})
	}
	if orbitalFillUsed {
		fill := orbital.BuildFillCloud(surfaceExtent, opts.Orbital)
		orbital.HeightAdjust(fill, allPoints, opts.Combine.CellSize, orbital.StatMed, opts.Orbital.HeightAdjustWidth, opts.Orbital.HeightAdjustBlend)
		sources = append(sources, fusion.SourceCloud{Cloud: fill, Origin: [3]float64{0, 0, 0}})
	}

	merged := fusion.Combine(sources, opts.Combine)
	dbg.Stage("clever-combine", merged)

	var mesh, untrimmed *scenegeo.Mesh
	if !opts.NoSurface {
		// §3 method dispatch: the implicit-field and sample-scale solvers
		// are distinct §6 black boxes with distinct contracts, so the
		// driver picks the collaborator by opts.Recon.Method rather than
		// always invoking the implicit one.
		switch opts.Recon.Method {
		case sceneconfig.MethodSampleScale:
			if d.SampleScaleReconstructor == nil {
				return nil, newError(KindInvalidArg, "reconstruct", fmt.Errorf("no sample-scale reconstructor configured"))
			}
			var scale float64
			if opts.Recon.HasGlobalScale {
				scale = opts.Recon.GlobalScale
			}
			var intermediate *scenegeo.Mesh
			mesh, err = d.SampleScaleReconstructor.Reconstruct(ctx, merged, scale, func(m *scenegeo.Mesh) { intermediate = m })
			untrimmed = intermediate
		default:
			if d.Reconstructor == nil {
				return nil, newError(KindInvalidArg, "reconstruct", fmt.Errorf("no surface reconstructor configured"))
			}
			mesh, untrimmed, err = d.Reconstructor.Reconstruct(ctx, merged, opts.Recon)
		}
		if err != nil || mesh == nil || mesh.NumFaces() == 0 {
			return nil, newError(KindReconstructionFailed, "reconstruct", err)
		}
		dbg.Stage("reconstructed", mesh)

		if opts.Recon.HasEnvelope {
			mesh = trim.Clip(mesh, opts.Recon.Envelope)
			if mesh.NumFaces() == 0 {
				return nil, newError(KindEmptyAfterClip, "reconstruct-envelope-clip", nil)
			}
		}
		if opts.Recon.MinIslandRatio > 0 {
			mesh = trim.CullSmallIslands(mesh, opts.Recon.MinIslandRatio)
		}

		// §4.7 strict hull trim.
		mesh = trim.StrictHullTrim(mesh, surfaceMask)
		dbg.Stage("hull-trim", mesh)

		// §4.8 decimator contract: pass-through guaranteed under target.
		mesh, err = trim.PassThrough(ctx, mesh, opts.TargetSurfaceMeshFaces, d.decimate)
		if err != nil {
			return nil, newError(KindReconstructionFailed, "decimate", err)
		}
		if mesh.NumFaces() == 0 {
			return nil, newError(KindEmptyAfterDecimate, "decimate", nil)
		}
		dbg.Stage("surface-decimate", mesh)

		// §4.9 lenient re-trim, when active, supersedes the decimated
		// mesh; mask-failed is non-fatal (§7) and falls back to the
		// strict-trimmed mesh already in hand.
		if opts.Recon.UsesLenientRetrim(orbitalFillUsed) && untrimmed != nil {
			retrimmed, retrimErr := trim.LenientRetrim(mesh, untrimmed, opts.ShrinkwrapPointsPerMeter, opts.MaskOffset, opts.Nadir, opts.Recon.LenientTrimmerLevel)
			if retrimErr != nil {
				logger.Printf("scenerecon: lenient re-trim failed, continuing with strict trim: %v", retrimErr)
			} else {
				mesh = retrimmed
			}
		}

		// §4.10 clip / clean / island-cull / normal-regen.
		pointsBox := scenegeo.EmptyBoundingBox()
		for _, p := range allPoints {
			pointsBox.ExpandToInclude(p)
		}
		extentBox := trim.AggregateExtentBox(pointsBox, opts.Extent)
		mesh = clipCleanRegen(mesh, extentBox, opts.MinIslandRatio)
		if mesh.NumFaces() == 0 {
			return nil, newError(KindEmptyAfterClean, "clip-clean", nil)
		}

		// §9 open question 1: when orbital is disabled the driver still
		// calls ClipSurfaceMesh a second time; it is idempotent, so the
		// redundant call is preserved rather than special-cased away.
		if opts.NoOrbital {
			mesh = trim.Clip(mesh, extentBox)
		}
		dbg.Stage("surface-clip-clean", mesh)
	}

	// §4.11/§4.12: orbital periphery and blend.
	if opts.BuildsOrbitalPeriphery() && !opts.NoOrbital {
		if d.DEM == nil {
			logger.Printf("scenerecon: orbital periphery requested but no DEM provider configured, skipping")
		} else {
			mesh, err = d.runOrbitalPeriphery(ctx, mesh, surfaceExtent, opts, logger)
			if err != nil {
				var pe *Error
				if errors.As(err, &pe) && !pe.Kind.IsFatal() {
					logger.Printf("scenerecon: %v", pe)
				} else {
					return nil, err
				}
			}
			dbg.Stage("orbital-blend", mesh)
		}
	}

	if mesh == nil {
		return nil, newError(KindNoInput, "assemble", fmt.Errorf("neither surface nor orbital mesh was produced"))
	}

	// Finish: decimate the assembled scene mesh, clip to observations,
	// atlas, save (spec.md §2 data flow).
	mesh, err = trim.PassThrough(ctx, mesh, opts.TargetSceneMeshFaces, d.decimate)
	if err != nil {
		return nil, newError(KindReconstructionFailed, "decimate-scene", err)
	}
	if mesh.NumFaces() == 0 {
		return nil, newError(KindEmptyAfterDecimate, "decimate-scene", nil)
	}
	dbg.Stage("scene-decimate", mesh)

	// §4.14 optional observation reduction.
	if len(frustums) > 0 {
		mesh = obsreduce.Reduce(mesh, frustums)
		dbg.Stage("observation-reduce", mesh)
	}

	// §4.13 atlas & texture warp.
	if opts.GenerateUVs {
		box := mesh.BoundingBox().SquareXY(tilingSurfaceExtent)
		mesh, err = atlas.BuildAtlas(ctx, d.AtlasStrategies, mesh, opts.AtlasMode, box, atlas.Params{
			TextureResolution: opts.TextureResolution,
			DstSurfaceFrac:    opts.DstSurfaceFrac,
			WarpExponent:      opts.AtlasWarpExponent,
			MaxTime:           opts.AtlasMaxTime,
		})
		if err != nil {
			return nil, newError(KindReconstructionFailed, "atlas", err)
		}
		dbg.Stage("atlas", mesh)
	}

	logger.Printf("scenerecon: final mesh bounding box %+v, %d faces", mesh.BoundingBox(), mesh.NumFaces())

	if d.Store != nil {
		var blob bytes.Buffer
		if err := scenegeo.EncodeOBJ(&blob, mesh); err != nil {
			return nil, newError(KindReconstructionFailed, "encode-mesh", err)
		}
		record := SceneMeshRecord{
			MeshVariant:   opts.MeshVariant,
			BoundingBox:   mesh.BoundingBox(),
			MeshBlob:      blob.Bytes(),
			SurfaceExtent: tilingSurfaceExtent,
		}
		if err := d.Store.SaveSceneMesh(ctx, opts.ProjectID, record); err != nil {
			return nil, newError(KindPlacesUnavailable, "save", err)
		}
		if opts.OutputURL != "" {
			if err := d.Store.SaveMeshFile(ctx, opts.OutputURL, blob.Bytes()); err != nil {
				return nil, newError(KindPlacesUnavailable, "save-mesh-file", err)
			}
		}
	}

	return mesh, nil
}

func (d *Driver) decimate(ctx context.Context, m *scenegeo.Mesh, target int) (*scenegeo.Mesh, error) {
	if d.Decimator == nil {
		return m, nil
	}
	return d.Decimator.Decimate(ctx, m, target)
}

// runOrbitalPeriphery implements §4.11-§4.12: build the fine orbital
// mesh, cut the surface footprint out of it, pair and blend its
// vertices against the surface mesh, then concatenate.
func (d *Driver) runOrbitalPeriphery(ctx context.Context, surfaceMesh *scenegeo.Mesh, surfaceExtent float64, opts sceneconfig.Options, logger *log.Logger) (*scenegeo.Mesh, error) {
	var surfaceBounds scenegeo.Subrect
	if surfaceMesh != nil {
		box := surfaceMesh.BoundingBox()
		mpp := d.DEM.MetersPerPixel()
		if mpp <= 0 {
			mpp = opts.Orbital.MetersPerPixel
		}
		surfaceBounds = scenegeo.Subrect{
			MinX: int(box.Min[0] / mpp),
			MinY: int(box.Min[1] / mpp),
			MaxX: int(box.Max[0] / mpp),
			MaxY: int(box.Max[1] / mpp),
		}
	}

	periphery, err := orbital.BuildPeriphery(d.DEM, surfaceBounds, opts.Extent/2, opts.Orbital)
	if err != nil {
		return surfaceMesh, newError(KindPlacesUnavailable, "orbital-periphery", err)
	}
	if periphery == nil || periphery.NumFaces() == 0 {
		return surfaceMesh, nil
	}
	orbitalMesh := periphery.Mesh

	if surfaceMesh == nil {
		orbitalMesh = trim.Clean(orbitalMesh)
		trim.RegenerateNormals(orbitalMesh)
		return orbitalMesh, nil
	}
	if !opts.Blend.Active() {
		// §8 boundary: blendRadius==0 and sewRadius==0 means the
		// periphery is concatenated as-is.
		return orbital.Finish(surfaceMesh, orbitalMesh), nil
	}

	mpp := d.DEM.MetersPerPixel()
	if mpp <= 0 {
		mpp = opts.Orbital.MetersPerPixel
	}
	radius := opts.Blend.EffectiveRadius(mpp)
	// §4.12 Pass 1 must pair within the larger of the blend and sew radii:
	// a sew-only configuration (blendRadius 0) still needs pairs for Pass 2
	// to snap against (§8 scenario 3).
	pairRadius := radius
	if opts.Blend.SewRadius > pairRadius {
		pairRadius = opts.Blend.SewRadius
	}
	pairs, err := orbital.PairNearest(ctx, orbitalMesh, surfaceMesh, pairRadius, surfaceExtent)
	if err != nil {
		return surfaceMesh, fmt.Errorf("orbital pair: %w", err)
	}
	if err := orbital.Blend(ctx, orbitalMesh, surfaceMesh, pairs, opts.Blend, mpp); err != nil {
		return surfaceMesh, fmt.Errorf("orbital blend: %w", err)
	}

	finished := orbital.Finish(surfaceMesh, orbitalMesh)
	finished = trim.Clean(finished)
	logger.Printf("scenerecon: orbital periphery blended, %d total faces", finished.NumFaces())
	return finished, nil
}

func clipCleanRegen(mesh *scenegeo.Mesh, extentBox scenegeo.BoundingBox, minIslandRatio float64) *scenegeo.Mesh {
	mesh = trim.Clip(mesh, extentBox)
	mesh = trim.Clean(mesh)
	if minIslandRatio > 0 {
		mesh = trim.CullSmallIslands(mesh, minIslandRatio)
	}
	trim.RegenerateNormals(mesh)
	return mesh
}

// pointCloudOf wraps raw positions in a faceless Mesh, for debug dumps
// taken before a stage that produces a real mesh exists.
func pointCloudOf(points [][3]float64) *scenegeo.Mesh {
	m := scenegeo.NewPointCloud()
	m.Positions = append(m.Positions, points...)
	return m
}

func flattenPositions(clouds []*scenegeo.Mesh) [][3]float64 {
	n := 0
	for _, c := range clouds {
		n += c.NumVertices()
	}
	out := make([][3]float64, 0, n)
	for _, c := range clouds {
		out = append(out, c.Positions...)
	}
	return out
}

// wedgeOrigin returns the clever-combine ranking origin (§4.4) for the
// i-th kept cloud: the translation of the pose of the wedge that
// produced it, or the world origin if no result holds that cloud. The
// frame collaborator's camera center is not consulted.
func wedgeOrigin(results []pointbuild.Result, i int, clouds []*scenegeo.Mesh) [3]float64 {
	cloud := clouds[i]
	for _, r := range results {
		if r.Cloud == cloud {
			return [3]float64{r.Wedge.Pose.Matrix[3], r.Wedge.Pose.Matrix[7], r.Wedge.Pose.Matrix[11]}
		}
	}
	return [3]float64{0, 0, 0}
}
