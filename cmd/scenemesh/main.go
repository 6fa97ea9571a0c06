// Command scenemesh runs the §4.6-§4.14 scene-mesh reconstruction
// pipeline over a manifest of wedges (see manifest.go), per the §6
// CLI surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/roverscene/scenemesh/internal/sceneconfig"
	"github.com/roverscene/scenemesh/internal/scenerecon"
	"github.com/roverscene/scenemesh/internal/scenestore"
	"github.com/roverscene/scenemesh/internal/version"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")

		manifestPath = flag.String("wedges", "", "path to a wedge manifest JSON file (required)")
		dbPath       = flag.String("db", "", "SQLite database path for project storage; empty disables persistence")
		debugDir     = flag.String("debugDir", "", "write numeric-prefixed debug mesh dumps under this directory")

		projectID   = flag.String("projectId", "", "project id the final SceneMesh record is saved under")
		meshVariant = flag.String("meshVariant", "default", "mesh variant name the final SceneMesh record is saved under")
		outputURL   = flag.String("outputUrl", "", "optional standalone mesh file URL (extension derived from the URL)")

		extent        = flag.Float64("extent", sceneconfig.DefaultOptions().Extent, "overall scene extent, meters")
		surfaceExtent = flag.Float64("surfaceExtent", sceneconfig.DefaultOptions().SurfaceExtent, "surface reconstruction extent, meters")

		noSurface = flag.Bool("noSurface", false, "skip the surface reconstruction path")
		noOrbital = flag.Bool("noOrbital", false, "skip the orbital periphery path")

		orbitalBlendRadius           = flag.Float64("orbitalBlendRadius", sceneconfig.DefaultBlendParams().BlendRadius, "orbital/surface blend radius, meters")
		orbitalSewRadius             = flag.Float64("orbitalSewRadius", sceneconfig.DefaultBlendParams().SewRadius, "orbital/surface seam radius, meters")
		orbitalFillPointsPerMeter    = flag.Float64("orbitalFillPointsPerMeter", sceneconfig.DefaultOrbitalParams().FillPointsPerMeter, "orbital fill sample density, points/meter")
		orbitalFillPoissonConfidence = flag.Float64("orbitalFillPoissonConfidence", sceneconfig.DefaultOrbitalParams().FillPoissonConfidence, "confidence assigned to orbital fill samples")

		poissonCellSize            = flag.Float64("poissonCellSize", sceneconfig.DefaultReconstructionParameters().MinCellWidthMeters, "implicit reconstructor minimum cell width, meters")
		poissonTreeDepth           = flag.Int("poissonTreeDepth", sceneconfig.DefaultReconstructionParameters().OctreeDepth, "implicit reconstructor octree depth")
		poissonTrimmerLevel        = flag.Float64("poissonTrimmerLevel", sceneconfig.DefaultReconstructionParameters().TrimmerLevel, "strict hull-trim density threshold")
		poissonTrimmerLevelLenient = flag.Float64("poissonTrimmerLevelLenient", sceneconfig.DefaultReconstructionParameters().LenientTrimmerLevel, "lenient re-trim density threshold")
		minIslandRatio             = flag.Float64("minIslandRatio", sceneconfig.DefaultOptions().MinIslandRatio, "minimum island-to-largest-island XY bounding-box diagonal ratio kept during clip/clean")
		normalFilter               = flag.Int("normalFilter", sceneconfig.DefaultBuildOptions().NormalFilter, "minimum valid 8-neighbor count for a wedge sample to survive (0-8)")

		noCleverCombine         = flag.Bool("noCleverCombine", sceneconfig.DefaultCleverCombineParams().Disabled, "skip clever-combine and pass points through unmerged")
		cleverCombineCellSize   = flag.Float64("cleverCombineCellSize", sceneconfig.DefaultCleverCombineParams().CellSize, "clever-combine grid cell size, meters")
		cleverCombineAspect     = flag.Float64("cleverCombineAspect", sceneconfig.DefaultCleverCombineParams().Aspect, "clever-combine grid cell aspect ratio")
		cleverCombineMaxPerCell = flag.Int("cleverCombineMaxPointsPerCell", sceneconfig.DefaultCleverCombineParams().MaxPerCell, "clever-combine max points retained per cell")

		targetSceneMeshFaces   = flag.Int("targetSceneMeshFaces", sceneconfig.DefaultOptions().TargetSceneMeshFaces, "decimation target for the final assembled scene mesh")
		targetSurfaceMeshFaces = flag.Int("targetSurfaceMeshFaces", sceneconfig.DefaultOptions().TargetSurfaceMeshFaces, "decimation target for the surface-only mesh")

		filterTriangles = flag.Bool("filterTriangles", sceneconfig.DefaultOptions().FilterTriangles, "stored in Options.FilterTriangles; no pipeline stage reads it (clean always drops zero-area triangles)")
		generateUVs     = flag.Bool("generateUvs", sceneconfig.DefaultOptions().GenerateUVs, "run the §4.13 atlas stage")
		atlasMode       = flag.String("atlasMode", string(sceneconfig.DefaultOptions().AtlasMode), "atlas strategy: uv-atlas, heightmap, naive, or manifold")

		atlasMaxTime = flag.Duration("atlasMaxTime", sceneconfig.DefaultOptions().AtlasMaxTime, "time budget before the atlas stage falls back to heightmap")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("scenemesh %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if err := run(runConfig{
		manifestPath: *manifestPath,
		dbPath:       *dbPath,
		debugDir:     *debugDir,

		projectID:   *projectID,
		meshVariant: *meshVariant,
		outputURL:   *outputURL,

		extent:        *extent,
		surfaceExtent: *surfaceExtent,
		noSurface:     *noSurface,
		noOrbital:     *noOrbital,

		orbitalBlendRadius:           *orbitalBlendRadius,
		orbitalSewRadius:             *orbitalSewRadius,
		orbitalFillPointsPerMeter:    *orbitalFillPointsPerMeter,
		orbitalFillPoissonConfidence: *orbitalFillPoissonConfidence,

		poissonCellSize:            *poissonCellSize,
		poissonTreeDepth:           *poissonTreeDepth,
		poissonTrimmerLevel:        *poissonTrimmerLevel,
		poissonTrimmerLevelLenient: *poissonTrimmerLevelLenient,
		minIslandRatio:             *minIslandRatio,
		normalFilter:               *normalFilter,

		noCleverCombine:         *noCleverCombine,
		cleverCombineCellSize:   *cleverCombineCellSize,
		cleverCombineAspect:     *cleverCombineAspect,
		cleverCombineMaxPerCell: *cleverCombineMaxPerCell,

		targetSceneMeshFaces:   *targetSceneMeshFaces,
		targetSurfaceMeshFaces: *targetSurfaceMeshFaces,

		filterTriangles: *filterTriangles,
		generateUVs:     *generateUVs,
		atlasMode:       *atlasMode,
		atlasMaxTime:    *atlasMaxTime,
	}); err != nil {
		log.Printf("scenemesh: %v", err)
		os.Exit(1)
	}
}

type runConfig struct {
	manifestPath, dbPath, debugDir          string
	projectID, meshVariant, outputURL       string
	extent, surfaceExtent                   float64
	noSurface, noOrbital                    bool
	orbitalBlendRadius, orbitalSewRadius     float64
	orbitalFillPointsPerMeter                float64
	orbitalFillPoissonConfidence             float64
	poissonCellSize                          float64
	poissonTreeDepth                         int
	poissonTrimmerLevel, poissonTrimmerLevelLenient float64
	minIslandRatio                           float64
	normalFilter                             int
	noCleverCombine                          bool
	cleverCombineCellSize, cleverCombineAspect float64
	cleverCombineMaxPerCell                   int
	targetSceneMeshFaces, targetSurfaceMeshFaces int
	filterTriangles, generateUVs             bool
	atlasMode                                 string
	atlasMaxTime                              time.Duration
}

func (c runConfig) options() sceneconfig.Options {
	opts := sceneconfig.DefaultOptions().
		WithExtents(c.extent, c.surfaceExtent).
		WithNoSurface(c.noSurface).
		WithNoOrbital(c.noOrbital).
		WithDebugDir(c.debugDir).
		WithAtlasMode(sceneconfig.AtlasMode(c.atlasMode)).
		WithTargetFaces(c.targetSceneMeshFaces, c.targetSurfaceMeshFaces).
		WithProject(c.projectID, c.meshVariant, c.outputURL)

	opts.MinIslandRatio = c.minIslandRatio
	opts.FilterTriangles = c.filterTriangles
	opts.GenerateUVs = c.generateUVs
	opts.AtlasMaxTime = c.atlasMaxTime

	opts.Build.NormalFilter = c.normalFilter

	opts.Recon.MinCellWidthMeters = c.poissonCellSize
	opts.Recon.OctreeDepth = c.poissonTreeDepth
	opts.Recon.TrimmerLevel = c.poissonTrimmerLevel
	opts.Recon.LenientTrimmerLevel = c.poissonTrimmerLevelLenient

	opts.Combine.Disabled = c.noCleverCombine
	opts.Combine.CellSize = c.cleverCombineCellSize
	opts.Combine.Aspect = c.cleverCombineAspect
	opts.Combine.MaxPerCell = c.cleverCombineMaxPerCell

	opts.Orbital.FillPointsPerMeter = c.orbitalFillPointsPerMeter
	opts.Orbital.FillPoissonConfidence = c.orbitalFillPoissonConfidence

	opts.Blend.BlendRadius = c.orbitalBlendRadius
	opts.Blend.SewRadius = c.orbitalSewRadius

	return opts
}

func run(c runConfig) error {
	if c.manifestPath == "" {
		return fmt.Errorf("-wedges is required")
	}

	wedges, err := loadWedges(c.manifestPath)
	if err != nil {
		return fmt.Errorf("load wedges: %w", err)
	}

	driver := &scenerecon.Driver{Logger: log.Default()}

	if c.dbPath != "" {
		store, err := scenestore.Open(c.dbPath)
		if err != nil {
			return fmt.Errorf("open project store: %w", err)
		}
		defer store.Close()
		driver.Store = store
	}

	ctx := context.Background()
	mesh, err := driver.Run(ctx, wedges, c.options(), nil)
	if err != nil {
		return err
	}

	log.Printf("scenemesh: reconstructed %d vertices, %d faces", mesh.NumVertices(), mesh.NumFaces())
	return nil
}
